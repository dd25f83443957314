package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lintang-b-s/routehazard/pkg"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client probes the places searchNearby API along a path and returns the raw
// POI candidate list. proximity filtering against the path is not done here;
// that is the matcher's job.
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
		baseURL: "https://places.googleapis.com/v1/places:searchNearby",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// searchNearby is the rate-limited hot spot of a batch run
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		log:     log,
	}
}

// API place type per category. the places API renamed police to
// police_station in its v1 type taxonomy.
var includedType = map[pkg.PlaceCategory]string{
	pkg.HOSPITAL:      "hospital",
	pkg.POLICE:        "police_station",
	pkg.GAS_STATION:   "gas_station",
	pkg.TRAIN_STATION: "train_station",
}

type searchNearbyResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		FormattedAddress string `json:"formattedAddress"`
	} `json:"places"`
}

/*
SearchAlongPath. probe every 10th path point, one searchNearby request per
category per probe, radius 1000 m, at most 20 results per request. duplicate
places returned by overlapping probes are collapsed. a category whose lookups
all fail yields no candidates for that category, not an error; without an API
key the whole lookup degrades to an empty list.
*/
func (c *Client) SearchAlongPath(ctx context.Context, path *datastructure.Path,
	categories []pkg.PlaceCategory) ([]datastructure.PointOfInterest, error) {

	if c.apiKey == "" {
		c.log.Warn("places API key not set, skipping POI lookup")
		return []datastructure.PointOfInterest{}, nil
	}
	if path == nil || path.Len() == 0 {
		return []datastructure.PointOfInterest{}, nil
	}

	seen := make(map[string]struct{})
	pois := make([]datastructure.PointOfInterest, 0)
	var nextId int64

	for i := 0; i < path.Len(); i += pkg.PLACES_SAMPLING_STRIDE {
		probe := path.Get(i)

		for _, category := range categories {
			results, err := c.searchNearby(ctx, probe, category)
			if err != nil {
				c.log.Warn("places lookup failed, continuing",
					zap.Int("path_index", i), zap.String("category", category.String()), zap.Error(err))
				continue
			}

			for _, res := range results.Places {
				key := fmt.Sprintf("%s/%.6f/%.6f", res.DisplayName.Text, res.Location.Latitude, res.Location.Longitude)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				pois = append(pois, datastructure.NewPointOfInterest(nextId, category,
					res.DisplayName.Text, res.FormattedAddress,
					geo.NewCoordinate(res.Location.Latitude, res.Location.Longitude)))
				nextId++
			}
		}
	}

	c.log.Info("places lookup along path done",
		zap.Int("path_points", path.Len()), zap.Int("pois", len(pois)))

	return pois, nil
}

func (c *Client) searchNearby(ctx context.Context, center geo.Coordinate,
	category pkg.PlaceCategory) (*searchNearbyResponse, error) {

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	requestBody := map[string]interface{}{
		"locationRestriction": map[string]interface{}{
			"circle": map[string]interface{}{
				"center": map[string]interface{}{
					"latitude":  center.Lat,
					"longitude": center.Lon,
				},
				"radius": pkg.PLACES_LOOKUP_RADIUS_METER,
			},
		},
		"includedTypes":  []string{includedType[category]},
		"maxResultCount": 20,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", "places.displayName,places.location,places.formattedAddress")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("places API rate limit reached")
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
