package utils

import (
	"encoding/json"
	"testing"
)

func boundaryJSON(t *testing.T, b ZoneBoundary) []byte {
	t.Helper()
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

// square around Wellington CBD, roughly.
var wellingtonSquare = ZoneBoundary{
	Name: "Wellington CBD",
	Coordinates: []Coordinate{
		{Lat: -41.30, Lng: 174.76},
		{Lat: -41.30, Lng: 174.80},
		{Lat: -41.27, Lng: 174.80},
		{Lat: -41.27, Lng: 174.76},
	},
}

func TestValidateBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{"empty document allowed", nil, false},
		{"valid square", nil, false}, // filled below
		{"not json", []byte("{{"), true},
		{"two points", boundaryJSON(t, ZoneBoundary{Coordinates: []Coordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}}), true},
		{"bad latitude", boundaryJSON(t, ZoneBoundary{Coordinates: []Coordinate{{Lat: 95, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}}), true},
		{"bad longitude", boundaryJSON(t, ZoneBoundary{Coordinates: []Coordinate{{Lat: 5, Lng: 181}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}}}), true},
	}
	tests[1].input = boundaryJSON(t, wellingtonSquare)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBoundary(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateBoundary() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestBoundaryContains(t *testing.T) {
	raw := boundaryJSON(t, wellingtonSquare)

	inside, err := BoundaryContains(raw, -41.29, 174.78)
	if err != nil {
		t.Fatal(err)
	}
	if !inside {
		t.Error("point in the middle of the square should be contained")
	}

	outside, err := BoundaryContains(raw, -41.50, 174.78)
	if err != nil {
		t.Fatal(err)
	}
	if outside {
		t.Error("point south of the square should not be contained")
	}

	none, err := BoundaryContains(nil, -41.29, 174.78)
	if err != nil || none {
		t.Errorf("empty boundary contains nothing, got %v, %v", none, err)
	}
}

func TestBoundaryFromGeoJSON(t *testing.T) {
	feature := []byte(`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[174.76,-41.30],[174.80,-41.30],[174.80,-41.27],[174.76,-41.27],[174.76,-41.30]]]}}`)
	b, err := BoundaryFromGeoJSON(feature, "imported")
	if err != nil {
		t.Fatalf("BoundaryFromGeoJSON: %v", err)
	}
	if b.Name != "imported" || len(b.Coordinates) != 5 {
		t.Errorf("boundary = %+v", b)
	}
	if b.Coordinates[0].Lat != -41.30 || b.Coordinates[0].Lng != 174.76 {
		t.Errorf("first coordinate = %+v", b.Coordinates[0])
	}

	if _, err := BoundaryFromGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`), "x"); err == nil {
		t.Error("point geometry must be rejected")
	}
	if _, err := BoundaryFromGeoJSON([]byte("nope"), "x"); err == nil {
		t.Error("garbage must be rejected")
	}
}
