package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Geocoder resolves a location string to coordinates. The boolean
// result reports whether a location could be resolved at all; an error
// is reserved for transport failures.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (Point, bool, error)
}

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// Well-known areas the public geocoder regularly misses. Server-side so
// no client carries its own copy.
var fallbackLocations = map[string]Point{
	"sector 14":   {Lat: 19.0760, Lon: 72.8777},
	"andheri":     {Lat: 19.1136, Lon: 72.8697},
	"bandra":      {Lat: 19.0596, Lon: 72.8295},
	"dadar":       {Lat: 19.0178, Lon: 72.8478},
	"kurla":       {Lat: 19.0726, Lon: 72.8845},
	"borivali":    {Lat: 19.2307, Lon: 72.8567},
	"colaba":      {Lat: 18.9067, Lon: 72.8147},
	"malad":       {Lat: 19.1874, Lon: 72.8484},
}

// NominatimClient geocodes against the Nominatim search API. Results
// are cached per query and concurrent lookups for the same query are
// collapsed; a short pause after each remote call keeps the usage
// within the public instance's rate policy.
type NominatimClient struct {
	baseURL    string
	city       string
	userAgent  string
	pause      time.Duration
	httpClient *http.Client

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]Point
}

type NewNominatimClientParams struct {
	BaseURL   string
	City      string
	UserAgent string
	Pause     time.Duration
	Timeout   time.Duration
}

func NewNominatimClient(params NewNominatimClientParams) *NominatimClient {
	if params.BaseURL == "" {
		params.BaseURL = defaultNominatimURL
	}
	if params.UserAgent == "" {
		params.UserAgent = "NyayaRakshak/1.0"
	}
	if params.Pause <= 0 {
		params.Pause = time.Second
	}
	if params.Timeout <= 0 {
		params.Timeout = 50 * time.Second
	}
	return &NominatimClient{
		baseURL:    strings.TrimSuffix(params.BaseURL, "/"),
		city:       params.City,
		userAgent:  params.UserAgent,
		pause:      params.Pause,
		httpClient: &http.Client{Timeout: params.Timeout},
		cache:      make(map[string]Point),
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, location string) (Point, bool, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Point{}, false, nil
	}
	key := strings.ToLower(location)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, true, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		point, found, err := c.lookup(ctx, location)
		if err != nil {
			return nil, err
		}
		if !found {
			if fallback, ok := fallbackLocations[key]; ok {
				point, found = fallback, true
			}
		}
		if found {
			c.mu.Lock()
			c.cache[key] = point
			c.mu.Unlock()
			return point, nil
		}
		return nil, nil
	})
	if err != nil {
		return Point{}, false, err
	}
	if res == nil {
		return Point{}, false, nil
	}
	return res.(Point), true, nil
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *NominatimClient) lookup(ctx context.Context, location string) (Point, bool, error) {
	query := location
	if c.city != "" {
		query = fmt.Sprintf("%s, %s", location, c.city)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Point{}, false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Point{}, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Point{}, false, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	// Rate-limit pause per the public instance's usage policy.
	select {
	case <-ctx.Done():
	case <-time.After(c.pause):
	}

	if len(results) == 0 {
		return Point{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, false, fmt.Errorf("parse geocode latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, false, fmt.Errorf("parse geocode longitude: %w", err)
	}

	point := Point{Lat: lat, Lon: lon}
	if !point.Valid() {
		return Point{}, false, nil
	}
	return point, true, nil
}
