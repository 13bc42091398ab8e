package geo

import (
	"math"
	"testing"

	"github.com/rl1809/retail/internal/core/domain"
)

func TestDistance_Symmetric(t *testing.T) {
	points := []domain.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 10},
		{Latitude: 25, Longitude: 25},
		{Latitude: 99.5, Longitude: 0.25},
		{Latitude: 42, Longitude: 73},
	}

	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", a, a, d)
		}
		for _, b := range points {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestDistance_Known(t *testing.T) {
	origin := domain.Coordinate{}

	got := Distance(origin, domain.Coordinate{Latitude: 3, Longitude: 4})
	if got != 5 {
		t.Errorf("expected 5, got %f", got)
	}

	got = Distance(origin, domain.Coordinate{Latitude: 10, Longitude: 10})
	if math.Abs(got-14.1421) > 0.001 {
		t.Errorf("expected ~14.14, got %f", got)
	}
}

func TestWithin_Threshold(t *testing.T) {
	origin := domain.Coordinate{}

	if !Within(origin, domain.Coordinate{Latitude: 10, Longitude: 10}, ProximityThreshold) {
		t.Error("store at (10,10) should be nearby")
	}
	if Within(origin, domain.Coordinate{Latitude: 25, Longitude: 25}, ProximityThreshold) {
		t.Error("store at (25,25) should be too far")
	}
	if !Within(origin, domain.Coordinate{Latitude: 30, Longitude: 0}, ProximityThreshold) {
		t.Error("distance equal to the threshold should be nearby")
	}
}
