// Package quote composes a shape, a paper and optional add-ons into one priced
// line item.
package quote

import (
	"fmt"
	"strings"

	"github.com/noah-isme/wrapping-quotes/internal/addon"
	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/pricing"
	"github.com/noah-isme/wrapping-quotes/internal/shape"
)

// UntitledTitle replaces empty quote titles.
const UntitledTitle = "Untitled Quote"

const fieldSeparator = "   |   "

// Quote is a single gift-wrapping configuration.
type Quote struct {
	Title    string
	Shape    shape.Shape
	Paper    paper.Paper
	Bow      addon.Optional[addon.Bow]
	GiftCard addon.Optional[addon.GiftCard]
}

// New builds a quote, normalising the title.
func New(title string, s shape.Shape, p paper.Paper, bow addon.Optional[addon.Bow], card addon.Optional[addon.GiftCard]) Quote {
	return Quote{
		Title:    NormalizeTitle(title),
		Shape:    s,
		Paper:    p,
		Bow:      bow,
		GiftCard: card,
	}
}

// NormalizeTitle maps blank titles to UntitledTitle.
func NormalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return UntitledTitle
	}
	return title
}

// Area is the recommended wrapping area of the quote's shape.
func (q Quote) Area() float64 {
	if q.Shape == nil {
		return 0
	}
	return q.Shape.RecommendedArea()
}

// PaperPrice is the paper cost in major units, or 0 for an unusable shape.
func (q Quote) PaperPrice() float64 {
	area := q.Area()
	if area <= 0 || q.Paper == nil {
		return 0
	}
	return pricing.MinorToMajor(q.Paper.PriceForArea(area))
}

// Price is the paper cost plus any gift card and bow. Add-ons are not charged
// when the shape has no usable area.
func (q Quote) Price() float64 {
	if q.Area() <= 0 {
		return 0
	}
	parts := []float64{q.PaperPrice()}
	if card, ok := q.GiftCard.Get(); ok {
		parts = append(parts, card.Price())
	}
	if bow, ok := q.Bow.Get(); ok {
		parts = append(parts, bow.Price())
	}
	return pricing.Sum(parts...)
}

// String renders a one-line summary for listings.
func (q Quote) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "£%s   '%s'", pricing.Format(q.Price()), q.Title)
	b.WriteString(fieldSeparator)
	b.WriteString(describe(q.Shape))
	b.WriteString(fieldSeparator)
	b.WriteString(describe(q.Paper))
	if bow, ok := q.Bow.Get(); ok {
		b.WriteString(fieldSeparator)
		b.WriteString(bow.String())
	}
	if card, ok := q.GiftCard.Get(); ok {
		b.WriteString(fieldSeparator)
		b.WriteString(card.String())
	}
	return b.String()
}

func describe(v fmt.Stringer) string {
	if v == nil {
		return "none"
	}
	return v.String()
}
