// Package addon prices the optional extras that can be attached to a quote.
package addon

import (
	"fmt"
	"unicode/utf8"

	"github.com/noah-isme/wrapping-quotes/internal/pricing"
)

// Default prices in major units.
const (
	DefaultBowPrice     = 1.50
	DefaultCardBaseRate = 0.50
	DefaultCardCharRate = 0.02
)

// Bow is a flat-priced ribbon bow.
type Bow struct {
	price float64
}

// NewBow returns a bow at the default price.
func NewBow() Bow {
	return Bow{price: DefaultBowPrice}
}

// Price returns the flat bow price.
func (b Bow) Price() float64 { return b.price }

func (Bow) String() string { return "Bow" }

// GiftCard is a personalised card charged per character of its message.
type GiftCard struct {
	Message  string
	BaseRate float64
	CharRate float64
}

// NewGiftCard returns a card carrying message at the default rates.
func NewGiftCard(message string) GiftCard {
	return GiftCard{Message: message, BaseRate: DefaultCardBaseRate, CharRate: DefaultCardCharRate}
}

// Length counts the message in code points, whitespace included.
func (g GiftCard) Length() int {
	return utf8.RuneCountInString(g.Message)
}

// Price is the base rate plus the per-character rate for every character.
func (g GiftCard) Price() float64 {
	return pricing.Sum(g.BaseRate, pricing.Mul(g.CharRate, float64(g.Length())))
}

func (g GiftCard) String() string {
	return fmt.Sprintf("Gift Card ['%s']", g.Message)
}
