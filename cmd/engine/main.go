package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/clients/directions"
	"github.com/lintang-b-s/routehazard/pkg/clients/places"
	"github.com/lintang-b-s/routehazard/pkg/clients/roads"
	"github.com/lintang-b-s/routehazard/pkg/engine"
	"github.com/lintang-b-s/routehazard/pkg/http"
	"github.com/lintang-b-s/routehazard/pkg/http/usecases"
	"github.com/lintang-b-s/routehazard/pkg/logger"
	"github.com/lintang-b-s/routehazard/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	matchRadiusMeter = flag.Float64("match_radius_meter", pkg.POI_MATCH_RADIUS_METER, "poi proximity match radius in meter")
	snapToRoads      = flag.Bool("snap_to_roads", false, "snap route polylines onto road geometry before analysis")
	useRateLimit     = flag.Bool("use_rate_limit", false, "rate limit api requests per client address")
)

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

	apiKey := viper.GetString("GOOGLE_MAPS_API_KEY")

	analysisEngine := engine.NewEngine(logger, *matchRadiusMeter)

	directionsClient := directions.NewClient(apiKey, logger)
	roadsClient := roads.NewClient(apiKey, logger)
	placesClient := places.NewClient(apiKey, logger)

	api := http.NewServer(logger)

	analysisService := usecases.NewAnalysisService(logger, analysisEngine,
		directionsClient, roadsClient, placesClient, *snapToRoads)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, analysisService)

	signal := http.GracefulShutdown()

	logger.Info("Route Hazard Analysis Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
