// Package paper prices wrapping paper by area for the two paper grades.
package paper

import (
	"fmt"

	"github.com/noah-isme/wrapping-quotes/internal/pricing"
)

// Grade identifies a paper price tier.
type Grade string

const (
	GradeCheap     Grade = "cheap"
	GradeExpensive Grade = "expensive"
)

// Per-cm² rates in minor units.
const (
	CheapRate     = 0.40
	ExpensiveRate = 0.75
)

// Paper is implemented only by Cheap and Expensive.
type Paper interface {
	Grade() Grade
	Colour() Colour
	// Rate is the price per cm² in minor units.
	Rate() float64
	// PriceForArea returns the cost of area cm² in minor units.
	PriceForArea(area float64) float64
	String() string
	sealed()
}

// Cheap is the lower-grade paper.
type Cheap struct {
	colour Colour
}

// NewCheap returns cheap paper in the given colour.
func NewCheap(c Colour) Cheap { return Cheap{colour: c} }

func (Cheap) Grade() Grade { return GradeCheap }
func (p Cheap) Colour() Colour { return p.colour }
func (Cheap) Rate() float64 { return CheapRate }

func (p Cheap) PriceForArea(area float64) float64 {
	return pricing.Mul(area, p.Rate())
}

func (p Cheap) String() string {
	return fmt.Sprintf("Cheap Wrapping Paper [%s]", HumanReadable(p.colour))
}

func (Cheap) sealed() {}

// Expensive is the premium paper.
type Expensive struct {
	colour Colour
}

// NewExpensive returns expensive paper in the given colour.
func NewExpensive(c Colour) Expensive { return Expensive{colour: c} }

func (Expensive) Grade() Grade { return GradeExpensive }
func (p Expensive) Colour() Colour { return p.colour }
func (Expensive) Rate() float64 { return ExpensiveRate }

func (p Expensive) PriceForArea(area float64) float64 {
	return pricing.Mul(area, p.Rate())
}

func (p Expensive) String() string {
	return fmt.Sprintf("Expensive Wrapping Paper [%s]", HumanReadable(p.colour))
}

func (Expensive) sealed() {}
