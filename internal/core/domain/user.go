package domain

// Coordinate is a point on the planar marketplace grid, both axes in [0,100].
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both axes are inside the grid.
func (c Coordinate) Valid() bool {
	return c.Latitude >= 0 && c.Latitude <= 100 && c.Longitude >= 0 && c.Longitude <= 100
}

type User struct {
	ID         int64
	Name       string
	Credential string
	Location   Coordinate
	Role       Role
}

// Session identifies who is acting. The zero value has no access.
type Session struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

func (s Session) Authenticated() bool {
	return s.Role != RoleNone
}
