package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/util"
)

// WriteAnalysis persists one route's ordered record set to a bzip2-compressed
// archive file so the export collaborator can pick it up later.
func WriteAnalysis(filename, routeId string, records []AnalysisRecord) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%s\t%d\n", routeId, len(records))

	for _, rec := range records {
		latF := strconv.FormatFloat(rec.coord.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(rec.coord.Lon, 'f', -1, 64)
		angleF := strconv.FormatFloat(rec.turnAngle, 'f', -1, 64)
		distF := strconv.FormatFloat(rec.distToStartKm, 'f', -1, 64)

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.category, rec.name, latF, lonF, angleF, rec.risk, distF)
	}

	return w.Flush()
}

// ReadAnalysis reads an archive written by WriteAnalysis.
func ReadAnalysis(filename string) (string, []AnalysisRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return "", nil, err
	}
	defer bz.Close()

	scanner := bufio.NewScanner(bz)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		return "", nil, util.WrapErrorf(scanner.Err(), util.ErrBadParamInput,
			"analysis archive %s: missing header", filename)
	}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) != 2 {
		return "", nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"analysis archive %s: malformed header %q", filename, scanner.Text())
	}
	routeId := header[0]
	n, err := strconv.Atoi(header[1])
	if err != nil {
		return "", nil, err
	}

	records := make([]AnalysisRecord, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return "", nil, util.WrapErrorf(scanner.Err(), util.ErrBadParamInput,
				"analysis archive %s: expected %d records, got %d", filename, n, i)
		}
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 7 {
			return "", nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"analysis archive %s: malformed record line %q", filename, scanner.Text())
		}

		lat, err := util.StringToFloat64(fields[2])
		if err != nil {
			return "", nil, err
		}
		lon, err := util.StringToFloat64(fields[3])
		if err != nil {
			return "", nil, err
		}
		angle, err := util.StringToFloat64(fields[4])
		if err != nil {
			return "", nil, err
		}
		risk, err := strconv.Atoi(fields[5])
		if err != nil {
			return "", nil, err
		}
		dist, err := util.StringToFloat64(fields[6])
		if err != nil {
			return "", nil, err
		}

		records = append(records, NewAnalysisRecord(routeId, fields[0], fields[1],
			geo.NewCoordinate(lat, lon), angle, pkg.RiskLevel(risk), dist))
	}

	return routeId, records, scanner.Err()
}
