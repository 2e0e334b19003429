// Package shape models the present geometries a customer can have wrapped and
// derives the recommended wrapping-paper area for each.
package shape

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/noah-isme/wrapping-quotes/internal/pricing"
)

// Margin is the overlap added to both synthetic sides, 3cm on each edge.
const Margin = 6

// ErrInvalidDimensions marks a shape whose required dimensions are not all positive.
var ErrInvalidDimensions = errors.New("shape dimensions must be positive")

// Kind identifies a shape variant.
type Kind string

const (
	KindCube     Kind = "cube"
	KindCuboid   Kind = "cuboid"
	KindCylinder Kind = "cylinder"
)

// Shape is implemented only by Cube, Cuboid and Cylinder.
type Shape interface {
	Kind() Kind
	// RecommendedArea returns the wrapping area in cm², or 0 when the
	// dimensions are not usable.
	RecommendedArea() float64
	String() string
	// Validate reports the first required dimension that is not strictly positive.
	Validate() error
	sealed()
}

// BaseArea returns the rounded area of a sheet covering height by width plus
// the overlap margin. Non-positive sides yield 0.
func BaseArea(height, width float64) float64 {
	if !(height > 0) || !(width > 0) {
		return 0
	}
	return pricing.Round((height + Margin) * (width + Margin))
}

// Cube has a single edge length.
type Cube struct {
	Length float64
}

func (Cube) Kind() Kind { return KindCube }

func (c Cube) RecommendedArea() float64 {
	return BaseArea(3*c.Length, 4*c.Length)
}

func (c Cube) Validate() error {
	return requirePositive("length", c.Length)
}

func (c Cube) String() string {
	return fmt.Sprintf("Cube [l = %scm] [area = %scm^2]", formatNumber(c.Length), formatNumber(c.RecommendedArea()))
}

func (Cube) sealed() {}

// Cuboid has independent width, height and depth.
type Cuboid struct {
	Width  float64
	Height float64
	Depth  float64
}

func (Cuboid) Kind() Kind { return KindCuboid }

func (c Cuboid) RecommendedArea() float64 {
	return BaseArea(2*c.Height+2*c.Width, 2*c.Height+c.Depth)
}

func (c Cuboid) Validate() error {
	if err := requirePositive("width", c.Width); err != nil {
		return err
	}
	if err := requirePositive("height", c.Height); err != nil {
		return err
	}
	return requirePositive("depth", c.Depth)
}

func (c Cuboid) String() string {
	return fmt.Sprintf("Cuboid [w = %scm, h = %scm, d = %scm] [area = %scm^2]",
		formatNumber(c.Width), formatNumber(c.Height), formatNumber(c.Depth), formatNumber(c.RecommendedArea()))
}

func (Cuboid) sealed() {}

// Cylinder is described by its radius and its depth along the axis.
type Cylinder struct {
	Radius float64
	Depth  float64
}

func (Cylinder) Kind() Kind { return KindCylinder }

func (c Cylinder) RecommendedArea() float64 {
	return BaseArea(4*c.Radius+c.Depth, 2*math.Pi*c.Radius)
}

func (c Cylinder) Validate() error {
	if err := requirePositive("radius", c.Radius); err != nil {
		return err
	}
	return requirePositive("depth", c.Depth)
}

func (c Cylinder) String() string {
	return fmt.Sprintf("Cylinder [r = %scm, d = %scm] [area = %scm^2]",
		formatNumber(c.Radius), formatNumber(c.Depth), formatNumber(c.RecommendedArea()))
}

func (Cylinder) sealed() {}

// ValidateDimensions is the strict check used before a quote is saved. A nil
// shape is invalid.
func ValidateDimensions(s Shape) error {
	if s == nil {
		return ErrInvalidDimensions
	}
	return s.Validate()
}

func requirePositive(name string, v float64) error {
	if v > 0 && !math.IsInf(v, 0) {
		return nil
	}
	return fmt.Errorf("%w: %s %s", ErrInvalidDimensions, name, formatNumber(v))
}

// formatNumber prints v in its shortest form, keeping a ".0" on whole numbers.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) {
		s += ".0"
	}
	return s
}
