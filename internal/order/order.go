// Package order aggregates quotes under one order number and exports them as a
// plain-text receipt.
package order

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/noah-isme/wrapping-quotes/internal/pricing"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
)

// ErrQuoteIndexOutOfRange is returned for a quote position outside the order.
var ErrQuoteIndexOutOfRange = errors.New("quote index out of range")

// Sequence hands out increasing order numbers starting at 1.
type Sequence struct {
	last atomic.Int64
}

// Next returns a number never returned before by this sequence.
func (s *Sequence) Next() int {
	return int(s.last.Add(1))
}

// Order is an ordered list of quotes. It is not safe for concurrent use.
type Order struct {
	number int
	quotes []quote.Quote
}

// New returns an empty order with the given number.
func New(number int) *Order {
	return &Order{number: number}
}

// Number returns the order number fixed at creation.
func (o *Order) Number() int { return o.number }

// Len returns the number of quotes.
func (o *Order) Len() int { return len(o.quotes) }

// Quotes returns a copy of the quotes in display order.
func (o *Order) Quotes() []quote.Quote {
	out := make([]quote.Quote, len(o.quotes))
	copy(out, o.quotes)
	return out
}

// Add appends q and returns its position.
func (o *Order) Add(q quote.Quote) int {
	o.quotes = append(o.quotes, q)
	return len(o.quotes) - 1
}

// At returns the quote at position i.
func (o *Order) At(i int) (quote.Quote, error) {
	if err := o.checkIndex(i); err != nil {
		return quote.Quote{}, err
	}
	return o.quotes[i], nil
}

// Replace swaps the quote at position i for q.
func (o *Order) Replace(i int, q quote.Quote) error {
	if err := o.checkIndex(i); err != nil {
		return err
	}
	o.quotes[i] = q
	return nil
}

// Remove deletes the quote at position i, shifting later quotes down.
func (o *Order) Remove(i int) error {
	if err := o.checkIndex(i); err != nil {
		return err
	}
	o.quotes = append(o.quotes[:i], o.quotes[i+1:]...)
	return nil
}

// TotalPrice sums every quote price and rounds the result.
func (o *Order) TotalPrice() float64 {
	prices := make([]float64, 0, len(o.quotes))
	for _, q := range o.quotes {
		prices = append(prices, q.Price())
	}
	return pricing.Total(prices...)
}

func (o *Order) checkIndex(i int) error {
	if i < 0 || i >= len(o.quotes) {
		return fmt.Errorf("%w: %d (order has %d)", ErrQuoteIndexOutOfRange, i, len(o.quotes))
	}
	return nil
}
