package utils

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ZoneBoundary is the stored shape of a supply zone: a named polygon in
// lat/lng pairs. Stored as JSONB on supply_zones.boundary.
type ZoneBoundary struct {
	Coordinates []Coordinate `json:"coordinates"`
	Name        string       `json:"name,omitempty"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidateBoundary checks a boundary JSON document before it is stored.
// An empty document is allowed (zones without a mapped boundary).
func ValidateBoundary(boundaryJSON []byte) error {
	if len(boundaryJSON) == 0 {
		return nil
	}

	var b ZoneBoundary
	if err := json.Unmarshal(boundaryJSON, &b); err != nil {
		return fmt.Errorf("invalid boundary JSON: %w", err)
	}
	if len(b.Coordinates) == 0 {
		return nil
	}
	if len(b.Coordinates) < 3 {
		return errors.New("boundary needs at least 3 coordinates to form a polygon")
	}
	for i, c := range b.Coordinates {
		if c.Lat < -90 || c.Lat > 90 {
			return fmt.Errorf("coordinate %d: latitude %.6f out of range [-90, 90]", i, c.Lat)
		}
		if c.Lng < -180 || c.Lng > 180 {
			return fmt.Errorf("coordinate %d: longitude %.6f out of range [-180, 180]", i, c.Lng)
		}
	}
	return nil
}

// polygon converts the boundary to an orb ring, closing it if the input
// polygon is left open.
func (b ZoneBoundary) polygon() orb.Polygon {
	ring := make(orb.Ring, 0, len(b.Coordinates)+1)
	for _, c := range b.Coordinates {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// BoundaryContains reports whether a point lies inside the stored zone
// boundary. A zone without a boundary contains nothing.
func BoundaryContains(boundaryJSON []byte, lat, lng float64) (bool, error) {
	if len(boundaryJSON) == 0 {
		return false, nil
	}
	var b ZoneBoundary
	if err := json.Unmarshal(boundaryJSON, &b); err != nil {
		return false, fmt.Errorf("invalid boundary JSON: %w", err)
	}
	if len(b.Coordinates) < 3 {
		return false, nil
	}
	return planar.PolygonContains(b.polygon(), orb.Point{lng, lat}), nil
}

// BoundaryFromGeoJSON accepts a GeoJSON Feature or bare Polygon geometry
// (the format mapping tools export) and converts it to the stored form.
func BoundaryFromGeoJSON(raw []byte, name string) (*ZoneBoundary, error) {
	geom, err := decodeGeometry(raw)
	if err != nil {
		return nil, err
	}
	poly, ok := geom.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("expected a Polygon geometry, got %s", geom.GeoJSONType())
	}
	if len(poly) == 0 || len(poly[0]) < 4 {
		return nil, errors.New("polygon outer ring is degenerate")
	}

	b := &ZoneBoundary{Name: name}
	for _, pt := range poly[0] {
		b.Coordinates = append(b.Coordinates, Coordinate{Lat: pt[1], Lng: pt[0]})
	}
	return b, nil
}

func decodeGeometry(raw []byte) (orb.Geometry, error) {
	if f, err := geojson.UnmarshalFeature(raw); err == nil {
		return f.Geometry, nil
	}
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	return g.Geometry(), nil
}
