package domain

import "context"

// Place is a resolved location.
type Place struct {
	Query            string  `json:"query,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}
