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

// WritePois persists a POI candidate set to a bzip2-compressed archive so an
// offline pbf extraction can feed later batch runs.
func WritePois(filename string, pois []PointOfInterest) error {
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

	fmt.Fprintf(w, "%d\n", len(pois))

	for _, poi := range pois {
		latF := strconv.FormatFloat(poi.coord.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(poi.coord.Lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			poi.id, poi.category, poi.name, poi.address, latF, lonF)
	}

	return w.Flush()
}

// ReadPois reads an archive written by WritePois.
func ReadPois(filename string) ([]PointOfInterest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	scanner := bufio.NewScanner(bz)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, util.WrapErrorf(scanner.Err(), util.ErrBadParamInput,
			"poi archive %s: missing header", filename)
	}
	n, err := strconv.Atoi(scanner.Text())
	if err != nil {
		return nil, err
	}

	pois := make([]PointOfInterest, 0, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, util.WrapErrorf(scanner.Err(), util.ErrBadParamInput,
				"poi archive %s: expected %d pois, got %d", filename, n, i)
		}
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 6 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"poi archive %s: malformed poi line %q", filename, scanner.Text())
		}

		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, err
		}
		category, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, err
		}
		lat, err := util.StringToFloat64(fields[4])
		if err != nil {
			return nil, err
		}
		lon, err := util.StringToFloat64(fields[5])
		if err != nil {
			return nil, err
		}

		pois = append(pois, NewPointOfInterest(id, pkg.PlaceCategory(category),
			fields[2], fields[3], geo.NewCoordinate(lat, lon)))
	}

	return pois, scanner.Err()
}
