package domain

type Product struct {
	StoreID   int64
	Name      string
	Units     int
	UnitPrice float64
}

// ProductChange carries the fields a manager chose to overwrite. A nil
// field is left untouched.
type ProductChange struct {
	Units     *int
	UnitPrice *float64
}

func (c ProductChange) Empty() bool {
	return c.Units == nil && c.UnitPrice == nil
}
