package domain

type Store struct {
	ID        int64
	Name      string
	Location  Coordinate
	ManagerID int64
}

type Warehouse struct {
	ID       int64
	Area     float64
	Location Coordinate
}
