package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client calls the directions API and hands the overview polyline to the
// analysis pipeline. only the polyline and the leg summary are consumed; the
// step-by-step navigation data is ignored.
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
		baseURL: "https://maps.googleapis.com/maps/api/directions/json",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// directions quota is generous; 10 rps keeps batch runs well under it
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		log:     log,
	}
}

type Route struct {
	encodedPolyline string
	distanceText    string
	durationText    string
	startAddress    string
	endAddress      string
}

func (r *Route) GetEncodedPolyline() string {
	return r.encodedPolyline
}

func (r *Route) GetDistanceText() string {
	return r.distanceText
}

func (r *Route) GetDurationText() string {
	return r.durationText
}

func (r *Route) GetStartAddress() string {
	return r.startAddress
}

func (r *Route) GetEndAddress() string {
	return r.endAddress
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute fetches the driving route between origin and destination.
func (c *Client) GetRoute(ctx context.Context, origin, destination geo.Coordinate) (*Route, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	params.Add("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	params.Add("mode", "driving")
	params.Add("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call directions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("directions API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse directions response: %w", err)
	}

	if parsed.Status != "OK" {
		return nil, util.WrapErrorf(nil, util.ErrNotFound,
			"directions API status: %s", parsed.Status)
	}
	if len(parsed.Routes) == 0 || len(parsed.Routes[0].Legs) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "directions API returned no routes")
	}

	route := parsed.Routes[0]
	leg := route.Legs[0]

	c.log.Debug("route fetched from directions API",
		zap.String("distance", leg.Distance.Text), zap.String("duration", leg.Duration.Text))

	return &Route{
		encodedPolyline: route.OverviewPolyline.Points,
		distanceText:    leg.Distance.Text,
		durationText:    leg.Duration.Text,
		startAddress:    leg.StartAddress,
		endAddress:      leg.EndAddress,
	}, nil
}
