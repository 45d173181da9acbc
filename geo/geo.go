/*
Package geo defines the location-search collaborator used when placing a
shift at a hospital.

The engine only needs a name-to-coordinates lookup; how results are found
(device geocoder, HTTP geocoding API, static table) is up to the
implementation. StaticSearcher serves development and tests.
*/
package geo

import (
	"context"
	"sort"
	"strings"
)

// Place is a named point a shift can be located at.
type Place struct {
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Searcher finds places matching a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// StaticSearcher matches against a fixed list of places, case-insensitive
// substring on name and address. Results are sorted by name.
type StaticSearcher struct {
	places []Place
}

var _ Searcher = (*StaticSearcher)(nil)

// NewStaticSearcher creates a searcher over the given places.
func NewStaticSearcher(places []Place) *StaticSearcher {
	return &StaticSearcher{places: places}
}

func (s *StaticSearcher) Search(_ context.Context, query string) ([]Place, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var out []Place
	for _, p := range s.places {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Address), q) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
