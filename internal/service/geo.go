package service

import "math/rand"

// GeoResolver supplies the origin metadata attached to a click. The
// interface exists so a real IP-geolocation lookup can be substituted
// without touching the registry service.
type GeoResolver interface {
	Resolve() (ipAddress, location string)
}

// Coarse location labels served by the mock resolver
var mockLocations = []string{
	"New York, US",
	"London, UK",
	"Tokyo, JP",
	"Sydney, AU",
	"Toronto, CA",
}

type mockGeoResolver struct{}

// NewMockGeoResolver returns a resolver that hands out a placeholder IP
// and a randomly chosen location label.
func NewMockGeoResolver() GeoResolver {
	return &mockGeoResolver{}
}

func (m *mockGeoResolver) Resolve() (string, string) {
	return "127.0.0.1", mockLocations[rand.Intn(len(mockLocations))]
}
