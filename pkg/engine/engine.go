package engine

import (
	"context"

	"github.com/lintang-b-s/routehazard/pkg/annotator"
	"github.com/lintang-b-s/routehazard/pkg/concurrent"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/guidance"
	"github.com/lintang-b-s/routehazard/pkg/matcher"
	"github.com/lintang-b-s/routehazard/pkg/metrics"
	"go.uber.org/zap"
)

// RouteAnalysis is everything one route's pipeline run produced. the path,
// event and match slices are handed to the visualization collaborator
// read-only; the record set goes to the export collaborator.
type RouteAnalysis struct {
	routeId string
	path    *datastructure.Path
	events  []datastructure.TurnEvent
	matches []datastructure.ProximityMatch
	records []datastructure.AnalysisRecord
	summary *metrics.RouteSummary
}

func (ra *RouteAnalysis) GetRouteId() string {
	return ra.routeId
}

func (ra *RouteAnalysis) GetPath() *datastructure.Path {
	return ra.path
}

func (ra *RouteAnalysis) GetTurnEvents() []datastructure.TurnEvent {
	return ra.events
}

func (ra *RouteAnalysis) GetMatches() []datastructure.ProximityMatch {
	return ra.matches
}

func (ra *RouteAnalysis) GetRecords() []datastructure.AnalysisRecord {
	return ra.records
}

func (ra *RouteAnalysis) GetSummary() *metrics.RouteSummary {
	return ra.summary
}

type Engine struct {
	log     *zap.Logger
	matcher *matcher.Matcher
}

func NewEngine(log *zap.Logger, matchRadiusMeter float64) *Engine {
	return &Engine{
		log:     log,
		matcher: matcher.New(log, matchRadiusMeter),
	}
}

/*
AnalyzeRoute. run the full pipeline for one route: decode the encoded path,
detect turns and match POIs over the same coordinate sequence, then merge both
into the ordered record set. a malformed polyline aborts this route only; no
partial analysis is returned.
*/
func (e *Engine) AnalyzeRoute(ctx context.Context, routeId, encodedPolyline string,
	pois []datastructure.PointOfInterest) (*RouteAnalysis, error) {

	coords, err := geo.DecodePolyline(encodedPolyline)
	if err != nil {
		e.log.Warn("route analysis aborted: polyline decode failed",
			zap.String("route_id", routeId), zap.Error(err))
		return nil, err
	}

	return e.AnalyzePath(ctx, routeId, datastructure.NewPath(coords), pois)
}

/*
AnalyzePath. the pipeline after decoding, for callers that already hold the
route geometry (e.g. after snapping it to roads).
*/
func (e *Engine) AnalyzePath(ctx context.Context, routeId string, path *datastructure.Path,
	pois []datastructure.PointOfInterest) (*RouteAnalysis, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events := guidance.DetectTurns(path)
	matches := e.matcher.Match(path, pois)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := annotator.Annotate(routeId, path, events, matches)
	if err != nil {
		return nil, err
	}

	totalKm := 0.0
	if path.Len() > 0 {
		dists, err := annotator.CumulativeDistancesKm(path)
		if err != nil {
			return nil, err
		}
		totalKm = dists[len(dists)-1]
	}

	e.log.Info("route analyzed",
		zap.String("route_id", routeId),
		zap.Int("path_points", path.Len()),
		zap.Int("turn_events", len(events)),
		zap.Int("poi_matches", len(matches)))

	return &RouteAnalysis{
		routeId: routeId,
		path:    path,
		events:  events,
		matches: matches,
		records: records,
		summary: metrics.NewRouteSummary(routeId, totalKm, events, matches),
	}, nil
}

// BatchJob is one route to analyze in a batch run.
type BatchJob struct {
	RouteId         string
	EncodedPolyline string
	Pois            []datastructure.PointOfInterest
}

// BatchResult carries either the analysis or the per-route error; one route
// failing never aborts the others.
type BatchResult struct {
	RouteId  string
	Analysis *RouteAnalysis
	Err      error
}

/*
AnalyzeBatch. analyze independent routes concurrently on a worker pool. every
route's path, POI list and output are owned exclusively by its job, so no
locking is needed across routes and results match a sequential run.
*/
func (e *Engine) AnalyzeBatch(ctx context.Context, jobs []BatchJob, numWorkers int) []BatchResult {
	if numWorkers < 1 {
		numWorkers = 1
	}

	pool := concurrent.NewWorkerPool[BatchJob, BatchResult](numWorkers, len(jobs))

	pool.Start(func(job BatchJob) BatchResult {
		analysis, err := e.AnalyzeRoute(ctx, job.RouteId, job.EncodedPolyline, job.Pois)
		return BatchResult{RouteId: job.RouteId, Analysis: analysis, Err: err}
	})

	for _, job := range jobs {
		pool.AddJob(job)
	}
	pool.Close()
	pool.Wait()

	results := make([]BatchResult, 0, len(jobs))
	for res := range pool.CollectResults() {
		results = append(results, res)
	}
	return results
}
