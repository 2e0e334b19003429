package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
	"github.com/noah-isme/wrapping-quotes/internal/shape"
)

func TestBuildQuote(t *testing.T) {
	q, err := BuildQuote(QuoteInput{
		Title:      "Birthday",
		Shape:      "Cuboid",
		Dimensions: []string{"5", "5", "5"},
		Paper:      "expensive",
		Colour:     "Purple",
		Bow:        true,
		GiftCard:   true,
		Message:    "Congrats!",
	})
	require.NoError(t, err)
	require.Equal(t, "Birthday", q.Title)
	require.Equal(t, shape.Cuboid{Width: 5, Height: 5, Depth: 5}, q.Shape)
	require.Equal(t, paper.Purple, q.Paper.Colour())
	require.Equal(t, 6.28, q.Price())
}

func TestBuildQuoteIgnoresUnusedDimensions(t *testing.T) {
	q, err := BuildQuote(QuoteInput{Shape: "cube", Dimensions: []string{"10"}, Paper: "cheap", Colour: "gold"})
	require.NoError(t, err)
	require.Equal(t, quote.UntitledTitle, q.Title)
	require.Equal(t, 6.62, q.Price())
	require.False(t, q.Bow.IsPresent())
	require.False(t, q.GiftCard.IsPresent())
}

func TestBuildQuoteStructErrors(t *testing.T) {
	_, err := BuildQuote(QuoteInput{Shape: "sphere", Paper: "", Colour: "gold"})
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "shape")
	require.Contains(t, verr.Fields, "paper")
	require.ErrorIs(t, err, ErrUnknownShape)
}

func TestBuildQuoteDomainErrors(t *testing.T) {
	_, err := BuildQuote(QuoteInput{Shape: "cylinder", Dimensions: []string{"3", "0"}, Paper: "cheap", Colour: ""})
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "dimensions")
	require.Contains(t, verr.Fields, "colour")
	require.ErrorIs(t, err, shape.ErrInvalidDimensions)
	require.ErrorIs(t, err, ErrColourUnset)
	require.Contains(t, err.Error(), "colour: no colour chosen")

	_, err = BuildQuote(QuoteInput{Shape: "cube", Dimensions: []string{"abc"}, Paper: "cheap", Colour: "black"})
	require.ErrorIs(t, err, ErrUnparsableDimension)
	require.ErrorIs(t, err, ErrColourInvalid)
}

func TestBuildQuoteTooManyDimensions(t *testing.T) {
	_, err := BuildQuote(QuoteInput{Shape: "cube", Dimensions: []string{"1", "2", "3", "4"}, Paper: "cheap", Colour: "gold"})
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "dimensions")
}

func TestBuildQuoteRejectsUnusableArea(t *testing.T) {
	_, err := BuildQuote(QuoteInput{Shape: "cube", Dimensions: []string{"1e13"}, Paper: "cheap", Colour: "Gold", Bow: true})
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Contains(t, verr.Fields, "dimensions")
	require.ErrorIs(t, err, shape.ErrInvalidDimensions)
}

func TestBuildQuoteRejectsZeroDepthCuboid(t *testing.T) {
	s := shape.Cuboid{Width: 4, Height: 4, Depth: 0}
	require.Positive(t, s.RecommendedArea())

	_, err := BuildQuote(QuoteInput{Shape: "cuboid", Dimensions: []string{"4", "4", "0"}, Paper: "cheap", Colour: "Gold"})
	require.ErrorIs(t, err, shape.ErrInvalidDimensions)
}
