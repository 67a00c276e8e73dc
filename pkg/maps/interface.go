package maps

import "context"

// Provider resolves addresses to coordinates and estimates road distance
// between two points. Ride search can fall back to a straight-line
// estimate when no provider is configured.
type Provider interface {
	Geocode(ctx context.Context, address string) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (*GeocodeResponse, error)
	DrivingDistance(ctx context.Context, origin, destination Location) (*RouteEstimate, error)
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	PlaceID     string   `json:"place_id"`
	Address     string   `json:"formatted_address"`
	Coordinates Location `json:"coordinates"`
	Types       []string `json:"types"`
}

// RouteEstimate is the road distance and travel time between two points.
type RouteEstimate struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
	DistanceText    string  `json:"distance_text"`
	DurationText    string  `json:"duration_text"`
}
