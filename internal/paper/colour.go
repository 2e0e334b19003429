package paper

import "strings"

// Colour is the internal tag of a wrapping-paper colour preset.
type Colour string

const (
	Purple        Colour = "purple"
	DarkSlateGrey Colour = "DarkSlateGray4"
	DeepSkyBlue   Colour = "deep sky blue"
	LightSeaGreen Colour = "light sea green"
	VioletRed     Colour = "VioletRed2"
	Gold          Colour = "gold"
)

// NoColour means no colour has been chosen yet.
const NoColour Colour = ""

// InvalidColour is returned by lookups that do not resolve to a preset.
const InvalidColour Colour = "#000000"

type preset struct {
	tag  Colour
	name string
}

var presets = []preset{
	{Purple, "Purple"},
	{DarkSlateGrey, "Dark Slate Grey 4"},
	{DeepSkyBlue, "Deep Sky Blue"},
	{LightSeaGreen, "Light Sea Green"},
	{VioletRed, "Violet Red 2"},
	{Gold, "Gold"},
}

// Colours returns the six presets in display order.
func Colours() []Colour {
	out := make([]Colour, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.tag)
	}
	return out
}

// Valid reports whether c is one of the presets.
func (c Colour) Valid() bool {
	for _, p := range presets {
		if p.tag == c {
			return true
		}
	}
	return false
}

// HumanReadable returns the display name of c, or the InvalidColour marker.
func HumanReadable(c Colour) string {
	for _, p := range presets {
		if p.tag == c {
			return p.name
		}
	}
	return string(InvalidColour)
}

// ColourFromName reverse-looks-up a display name. Unknown names yield InvalidColour.
func ColourFromName(name string) Colour {
	for _, p := range presets {
		if p.name == name {
			return p.tag
		}
	}
	return InvalidColour
}

// LookupColour accepts either a display name or an internal tag, ignoring case
// and surrounding whitespace. Blank input yields NoColour.
func LookupColour(value string) Colour {
	v := strings.TrimSpace(value)
	if v == "" {
		return NoColour
	}
	for _, p := range presets {
		if strings.EqualFold(p.name, v) || strings.EqualFold(string(p.tag), v) {
			return p.tag
		}
	}
	return InvalidColour
}
