package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/logger"
	"github.com/lintang-b-s/routehazard/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	pbfFile = flag.String("pbf", "./data/map.osm.pbf", "openstreetmap pbf extract")
	outFile = flag.String("out", "./data/pois.bz2", "output poi archive")
	minLat  = flag.Float64("min_lat", -90, "bounding box minimum latitude")
	minLon  = flag.Float64("min_lon", -180, "bounding box minimum longitude")
	maxLat  = flag.Float64("max_lat", 90, "bounding box maximum latitude")
	maxLon  = flag.Float64("max_lon", 180, "bounding box maximum longitude")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	bb := datastructure.NewBoundingBox(*minLat, *minLon, *maxLat, *maxLon)

	parser := osmparser.NewPoiParser(logger)
	pois, err := parser.ParsePois(context.Background(), *pbfFile, bb)
	if err != nil {
		logger.Fatal("parse pois from pbf", zap.Error(err))
	}

	if err := datastructure.WritePois(*outFile, pois); err != nil {
		logger.Fatal("write poi archive", zap.Error(err))
	}

	logger.Info("poi archive written", zap.String("file", *outFile), zap.Int("pois", len(pois)))
}
