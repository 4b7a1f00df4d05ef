package domain

import "context"

// Geocoder resolves a free-text postal address to coordinates.
type Geocoder interface {
	// Geocode returns the best-match coordinates for an address.
	// A nil error with found=false means the service answered but had no
	// result for the address.
	Geocode(ctx context.Context, address string) (coords Coordinates, found bool, err error)
}
