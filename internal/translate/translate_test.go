package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/shape"
)

func TestParsePresent(t *testing.T) {
	s, err := ParsePresent("cube", "10", "0", "0")
	require.NoError(t, err)
	require.Equal(t, shape.Cube{Length: 10}, s)

	s, err = ParsePresent("cuboid", "1", "2", "3")
	require.NoError(t, err)
	require.Equal(t, shape.Cuboid{Width: 1, Height: 2, Depth: 3}, s)

	s, err = ParsePresent("cylinder", "4", "5", "ignored-but-parsed")
	require.ErrorIs(t, err, ErrUnparsableDimension)
	require.Nil(t, s)

	s, err = ParsePresent(" Cylinder ", "4", "5", "0")
	require.NoError(t, err)
	require.Equal(t, shape.Cylinder{Radius: 4, Depth: 5}, s)
}

func TestParsePresentMakesNegativesPositive(t *testing.T) {
	s, err := ParsePresent("cuboid", "-1", "-2.5", "-3")
	require.NoError(t, err)
	require.Equal(t, shape.Cuboid{Width: 1, Height: 2.5, Depth: 3}, s)
}

func TestParsePresentInvalid(t *testing.T) {
	cases := []struct {
		name       string
		tag        string
		d1, d2, d3 string
		want       error
	}{
		{"unknown tag", "sphere", "1", "1", "1", ErrUnknownShape},
		{"empty tag", "", "1", "1", "1", ErrUnknownShape},
		{"letters", "cube", "ten", "0", "0", ErrUnparsableDimension},
		{"blank", "cube", "", "0", "0", ErrUnparsableDimension},
		{"nan", "cube", "NaN", "0", "0", ErrUnparsableDimension},
		{"inf", "cube", "inf", "0", "0", ErrUnparsableDimension},
		{"overflow", "cube", "1e400", "0", "0", ErrUnparsableDimension},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParsePresent(tc.tag, tc.d1, tc.d2, tc.d3)
			require.Nil(t, s)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateDimensionsIsStricterThanArea(t *testing.T) {
	s, err := ParsePresent("cuboid", "3", "3", "0")
	require.NoError(t, err)
	require.Positive(t, s.RecommendedArea())
	require.ErrorIs(t, ValidateDimensions(s), shape.ErrInvalidDimensions)

	s, err = ParsePresent("cube", "0", "0", "0")
	require.NoError(t, err)
	require.Zero(t, s.RecommendedArea())
	require.Error(t, ValidateDimensions(s))
}

func TestParsePaper(t *testing.T) {
	p, err := ParsePaper("cheap", paper.Gold)
	require.NoError(t, err)
	require.Equal(t, paper.GradeCheap, p.Grade())
	require.Equal(t, paper.Gold, p.Colour())

	p, err = ParsePaper("EXPENSIVE", "black")
	require.NoError(t, err)
	require.Equal(t, paper.GradeExpensive, p.Grade())
	require.Equal(t, paper.Colour("black"), p.Colour())

	p, err = ParsePaper("glitter", paper.Gold)
	require.Nil(t, p)
	require.ErrorIs(t, err, ErrUnknownPaper)
}

func TestParseColourSeparatesUnsetFromInvalid(t *testing.T) {
	c, err := ParseColour("Gold")
	require.NoError(t, err)
	require.Equal(t, paper.Gold, c)

	_, err = ParseColour("")
	require.ErrorIs(t, err, ErrColourUnset)

	c, err = ParseColour("black")
	require.ErrorIs(t, err, ErrColourInvalid)
	require.Equal(t, paper.InvalidColour, c)
	require.False(t, errors.Is(err, ErrColourUnset))
}

func TestParseAddons(t *testing.T) {
	require.False(t, ParseBow(false).IsPresent())
	require.True(t, ParseBow(true).IsPresent())

	require.False(t, ParseGiftCard(false, "ignored").IsPresent())
	card, ok := ParseGiftCard(true, "").Get()
	require.True(t, ok)
	require.Equal(t, "", card.Message)
}
