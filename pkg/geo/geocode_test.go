package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(serverURL string) *NominatimClient {
	return NewNominatimClient(NewNominatimClientParams{
		BaseURL: serverURL,
		City:    "Mumbai",
		Pause:   time.Millisecond,
	})
}

func TestGeocode(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"lat": "19.0178", "lon": "72.8478", "display_name": "Dadar, Mumbai"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	point, found, err := client.Geocode(context.Background(), "Dadar Station")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a resolved location")
	}
	if point.Lat != 19.0178 || point.Lon != 72.8478 {
		t.Fatalf("unexpected point %+v", point)
	}
	if gotQuery != "Dadar Station, Mumbai" {
		t.Fatalf("query = %q, want city appended", gotQuery)
	}
}

func TestGeocodeCaches(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`[{"lat": "19.0", "lon": "72.8"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, found, err := client.Geocode(ctx, "Kharghar"); err != nil || !found {
			t.Fatalf("lookup %d failed: found=%v err=%v", i, found, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("remote called %d times, want 1", got)
	}
}

func TestGeocodeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	point, found, err := client.Geocode(context.Background(), "Dadar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("well-known area must resolve through the fallback table")
	}
	if point.Lat != 19.0178 || point.Lon != 72.8478 {
		t.Fatalf("unexpected fallback point %+v", point)
	}
}

func TestGeocodeUnresolved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, found, err := client.Geocode(context.Background(), "Nowhere Particular")
	if err != nil {
		t.Fatalf("unresolved location must not error: %v", err)
	}
	if found {
		t.Fatal("expected found=false")
	}
}

func TestGeocodeEmptyLocation(t *testing.T) {
	client := newTestClient("http://localhost:0")
	_, found, err := client.Geocode(context.Background(), "   ")
	if err != nil || found {
		t.Fatalf("empty location: found=%v err=%v, want false/nil", found, err)
	}
}

func TestGeocodeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, _, err := client.Geocode(context.Background(), "Dadar"); err == nil {
		t.Fatal("expected transport error")
	}
}
