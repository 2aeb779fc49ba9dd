package address

import (
	"math"

	"github.com/google/uuid"
)

// CoordTolerance is the duplicate-detection window, in degrees, applied to
// both latitude and longitude when saving an address. 0.0001 degrees is
// roughly 10 meters; two saved addresses closer than that on both axes are
// considered the same physical location.
const CoordTolerance = 0.0001

// Address is a geocoded delivery location.
type Address struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Name      string    `json:"name,omitempty"`
	IsDefault bool      `json:"is_default,omitempty"`
}

// Valid reports whether the address carries usable coordinates. The zero
// point is treated as unset; no serviceable location sits at exactly (0, 0).
func (a Address) Valid() bool {
	return !(a.Lat == 0 && a.Lng == 0)
}

// near reports whether two addresses fall inside the duplicate window.
func near(a, b Address) bool {
	return math.Abs(a.Lat-b.Lat) <= CoordTolerance &&
		math.Abs(a.Lng-b.Lng) <= CoordTolerance
}
