// Package geo computes proximity on the marketplace grid. Distances are
// planar, not great-circle: the grid is a toy [0,100] square.
package geo

import (
	"math"

	"github.com/rl1809/retail/internal/core/domain"
)

// ProximityThreshold is the largest distance at which a store counts as
// nearby and can accept a customer's order.
const ProximityThreshold = 30.0

// Distance returns the Euclidean distance between a and b.
func Distance(a, b domain.Coordinate) float64 {
	dLat := a.Latitude - b.Latitude
	dLong := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLong*dLong)
}

// Within reports whether a and b are at most radius apart.
func Within(a, b domain.Coordinate, radius float64) bool {
	return Distance(a, b) <= radius
}
