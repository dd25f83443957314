package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	polyline   = flag.String("polyline", "", "encoded polyline to walk")
	outFile    = flag.String("out", "./data/fixes.csv", "output csv: timestamp_ms,lat,lon,accuracy_m")
	intervalMs = flag.Int64("interval_ms", 1000, "interval between fixes")
	noiseMeter = flag.Float64("noise_meter", 5.0, "gaussian position noise sigma in meter")
	seed       = flag.Uint64("seed", 1, "rng seed")
)

/*
fix generator. walk an encoded polyline point by point and emit one noisy gps
fix per point, for exercising the live tracker without a real device. noise is
gaussian around each path point with the given sigma; accuracy is reported as
that sigma.
*/
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	coords, err := geo.DecodePolyline(*polyline)
	if err != nil {
		logger.Fatal("decode polyline", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*outFile)
	if err != nil {
		logger.Fatal("create output file", zap.Error(err))
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	start := time.Now().UnixMilli()
	for i, c := range coords {
		noisy := jitter(rng, c, *noiseMeter)
		ts := start + int64(i)**intervalMs

		err := w.Write([]string{
			strconv.FormatInt(ts, 10),
			strconv.FormatFloat(noisy.Lat, 'f', -1, 64),
			strconv.FormatFloat(noisy.Lon, 'f', -1, 64),
			strconv.FormatFloat(*noiseMeter, 'f', -1, 64),
		})
		if err != nil {
			logger.Fatal("write fix", zap.Error(err))
		}
	}

	logger.Info("fixes written", zap.String("file", *outFile), zap.Int("fixes", len(coords)))
}

// jitter displaces c by a gaussian offset with sigma meter in a uniform random
// direction.
func jitter(rng *rand.Rand, c geo.Coordinate, sigmaMeter float64) geo.Coordinate {
	distKm := rng.NormFloat64() * sigmaMeter / 1000.0
	bearing := rng.Float64() * 360.0
	lat, lon := geo.GetDestinationPoint(c.Lat, c.Lon, bearing, distKm)
	return geo.NewCoordinate(lat, lon)
}
