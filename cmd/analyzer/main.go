package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/engine"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/logger"
	"github.com/lintang-b-s/routehazard/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	inputFile        = flag.String("input", "./data/destinations.csv", "csv of destinations: route_id,lat,lon")
	poiFile          = flag.String("pois", "", "optional poi archive written by the pois generator")
	outDir           = flag.String("out", "./data/analysis", "directory for per-route analysis archives")
	originLat        = flag.Float64("origin_lat", 0, "shared route origin latitude")
	originLon        = flag.Float64("origin_lon", 0, "shared route origin longitude")
	matchRadiusMeter = flag.Float64("match_radius_meter", pkg.POI_MATCH_RADIUS_METER, "poi proximity match radius in meter")
	numWorkers       = flag.Int("workers", runtime.NumCPU(), "number of concurrent analysis workers")
)

/*
batch analyzer. fetch a driving route from the shared origin to every
destination in the input csv, analyze all routes concurrently and write one
compressed archive per route. a route that fails to fetch or analyze is logged
and skipped; it never aborts the batch.
*/
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Warn("config file not loaded, using defaults and environment", zap.Error(err))
	}
	viper.AutomaticEnv()

	destinations, err := readDestinations(*inputFile)
	if err != nil {
		logger.Fatal("read destinations", zap.String("file", *inputFile), zap.Error(err))
	}

	var pois []datastructure.PointOfInterest
	if *poiFile != "" {
		pois, err = datastructure.ReadPois(*poiFile)
		if err != nil {
			logger.Fatal("read poi archive", zap.String("file", *poiFile), zap.Error(err))
		}
		logger.Info("loaded poi candidates", zap.Int("pois", len(pois)))
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("create output directory", zap.Error(err))
	}

	ctx := context.Background()
	origin := geo.NewCoordinate(*originLat, *originLon)
	directionsClient := directions.NewClient(viper.GetString("GOOGLE_MAPS_API_KEY"), logger)

	jobs := make([]engine.BatchJob, 0, len(destinations))
	for _, dest := range destinations {
		route, err := directionsClient.GetRoute(ctx, origin, dest.coord)
		if err != nil {
			logger.Warn("directions fetch failed, skipping route",
				zap.String("route_id", dest.routeId), zap.Error(err))
			continue
		}
		jobs = append(jobs, engine.BatchJob{
			RouteId:         dest.routeId,
			EncodedPolyline: route.GetEncodedPolyline(),
			Pois:            pois,
		})
	}

	analysisEngine := engine.NewEngine(logger, *matchRadiusMeter)
	results := analysisEngine.AnalyzeBatch(ctx, jobs, *numWorkers)

	analyzed := 0
	for _, res := range results {
		if res.Err != nil {
			logger.Warn("route analysis failed",
				zap.String("route_id", res.RouteId), zap.Error(res.Err))
			continue
		}

		out := filepath.Join(*outDir, fmt.Sprintf("%s.analysis.bz2", res.RouteId))
		if err := datastructure.WriteAnalysis(out, res.RouteId, res.Analysis.GetRecords()); err != nil {
			logger.Warn("write analysis archive failed",
				zap.String("route_id", res.RouteId), zap.Error(err))
			continue
		}
		analyzed++
	}

	logger.Info("batch analysis done",
		zap.Int("destinations", len(destinations)),
		zap.Int("routes_analyzed", analyzed))
}

type destination struct {
	routeId string
	coord   geo.Coordinate
}

func readDestinations(filename string) ([]destination, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	dests := make([]destination, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"%s line %d: want route_id,lat,lon, got %d fields", filename, i+1, len(row))
		}
		lat, err := util.StringToFloat64(row[1])
		if err != nil {
			return nil, err
		}
		lon, err := util.StringToFloat64(row[2])
		if err != nil {
			return nil, err
		}
		dests = append(dests, destination{routeId: row[0], coord: geo.NewCoordinate(lat, lon)})
	}
	return dests, nil
}
