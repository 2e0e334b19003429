// Package translate turns raw user selections into validated domain values.
// Every parser reports bad input as an error value; none of them panic.
package translate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/wrapping-quotes/internal/addon"
	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/shape"
)

var (
	// ErrUnknownShape is returned for a shape tag other than cube, cuboid or cylinder.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnparsableDimension is returned when a dimension is not a finite number.
	ErrUnparsableDimension = errors.New("dimension is not a number")
	// ErrUnknownPaper is returned for a paper tag other than cheap or expensive.
	ErrUnknownPaper = errors.New("unknown paper grade")
	// ErrColourUnset is returned when no colour has been chosen.
	ErrColourUnset = errors.New("no colour chosen")
	// ErrColourInvalid is returned for a colour outside the presets.
	ErrColourInvalid = errors.New("colour is not a preset")
)

// ParsePresent parses three raw dimensions and builds the shape named by tag.
// Negative numbers are made positive. Dimensions a shape does not use are
// still parsed.
func ParsePresent(tag, d1, d2, d3 string) (shape.Shape, error) {
	var dims [3]float64
	for i, raw := range []string{d1, d2, d3} {
		v, err := parseDimension(raw)
		if err != nil {
			return nil, err
		}
		dims[i] = v
	}
	switch shape.Kind(normalizeTag(tag)) {
	case shape.KindCube:
		return shape.Cube{Length: dims[0]}, nil
	case shape.KindCuboid:
		return shape.Cuboid{Width: dims[0], Height: dims[1], Depth: dims[2]}, nil
	case shape.KindCylinder:
		return shape.Cylinder{Radius: dims[0], Depth: dims[1]}, nil
	default:
		return nil, ErrUnknownShape
	}
}

// ValidateDimensions rejects a shape with any required dimension at or below zero.
func ValidateDimensions(s shape.Shape) error {
	return shape.ValidateDimensions(s)
}

// ParsePaper builds the paper named by tag. The colour is passed through and
// checked separately with ParseColour.
func ParsePaper(tag string, colour paper.Colour) (paper.Paper, error) {
	switch paper.Grade(normalizeTag(tag)) {
	case paper.GradeCheap:
		return paper.NewCheap(colour), nil
	case paper.GradeExpensive:
		return paper.NewExpensive(colour), nil
	default:
		return nil, ErrUnknownPaper
	}
}

// ParseColour resolves a display name or internal tag to a preset.
func ParseColour(value string) (paper.Colour, error) {
	c := paper.LookupColour(value)
	switch {
	case c == paper.NoColour:
		return c, ErrColourUnset
	case !c.Valid():
		return paper.InvalidColour, ErrColourInvalid
	}
	return c, nil
}

// ParseGiftCard returns a card for message when requested.
func ParseGiftCard(requested bool, message string) addon.Optional[addon.GiftCard] {
	if !requested {
		return addon.None[addon.GiftCard]()
	}
	return addon.Some(addon.NewGiftCard(message))
}

// ParseBow returns a bow when requested.
func ParseBow(requested bool) addon.Optional[addon.Bow] {
	if !requested {
		return addon.None[addon.Bow]()
	}
	return addon.Some(addon.NewBow())
}

func parseDimension(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrUnparsableDimension
	}
	return math.Abs(v), nil
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
