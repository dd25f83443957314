package roads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client snaps decoded polyline points onto the road network so turn
// detection works on road geometry instead of the coarse overview polyline.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewClient(apiKey string, log *zap.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://roads.googleapis.com/v1/snapToRoads",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		log:     log,
	}
}

type snapResponse struct {
	SnappedPoints []struct {
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
	} `json:"snappedPoints"`
}

/*
SnapToRoads. snap the points in chunks of 100 (the API's path limit) with
interpolation enabled. a chunk that fails is logged and skipped, matching the
collaborator contract that a degraded snap is better than no analysis; if
every chunk fails the caller gets an error instead of an empty path.
*/
func (c *Client) SnapToRoads(ctx context.Context, coords []geo.Coordinate) ([]geo.Coordinate, error) {
	snapped := make([]geo.Coordinate, 0, len(coords))

	for start := 0; start < len(coords); start += pkg.SNAP_TO_ROADS_CHUNK_SIZE {
		end := util.MinInt(start+pkg.SNAP_TO_ROADS_CHUNK_SIZE, len(coords))

		chunk, err := c.snapChunk(ctx, coords[start:end])
		if err != nil {
			c.log.Warn("snap-to-roads chunk failed, skipping",
				zap.Int("chunk_start", start), zap.Error(err))
			continue
		}
		snapped = append(snapped, chunk...)
	}

	if len(coords) > 0 && len(snapped) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrInternalServerError,
			"snap-to-roads failed for every chunk")
	}

	c.log.Debug("snapped points to roads",
		zap.Int("in", len(coords)), zap.Int("out", len(snapped)))

	return snapped, nil
}

func (c *Client) snapChunk(ctx context.Context, coords []geo.Coordinate) ([]geo.Coordinate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pathParts := make([]string, len(coords))
	for i, p := range coords {
		pathParts[i] = fmt.Sprintf("%f,%f", p.Lat, p.Lon)
	}

	params := url.Values{}
	params.Add("path", strings.Join(pathParts, "|"))
	params.Add("interpolate", "true")
	params.Add("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("roads API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed snapResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]geo.Coordinate, 0, len(parsed.SnappedPoints))
	for _, sp := range parsed.SnappedPoints {
		out = append(out, geo.NewCoordinate(sp.Location.Latitude, sp.Location.Longitude))
	}
	return out, nil
}
