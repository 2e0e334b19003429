package session

import (
	"github.com/noah-isme/wrapping-quotes/internal/order"
	"github.com/noah-isme/wrapping-quotes/internal/paper"
	"github.com/noah-isme/wrapping-quotes/internal/pricing"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
)

// QuoteView is the JSON shape of one quote.
type QuoteView struct {
	Index      int     `json:"index"`
	Title      string  `json:"title"`
	Display    string  `json:"display"`
	Shape      string  `json:"shape"`
	Area       float64 `json:"area"`
	Paper      string  `json:"paper"`
	Colour     string  `json:"colour"`
	PaperPrice string  `json:"paperPrice"`
	Bow        bool    `json:"bow"`
	GiftCard   *string `json:"giftCardMessage,omitempty"`
	Price      string  `json:"price"`
}

// Snapshot is the JSON shape of a session.
type Snapshot struct {
	SessionID     string      `json:"sessionId"`
	OrderNumber   int         `json:"orderNumber"`
	Quotes        []QuoteView `json:"quotes"`
	Total         string      `json:"total"`
	ExportPending bool        `json:"exportPending"`
	Editing       *int        `json:"editing,omitempty"`
}

// NewQuoteView renders q at position index.
func NewQuoteView(index int, q quote.Quote) QuoteView {
	v := QuoteView{
		Index:      index,
		Title:      q.Title,
		Display:    q.String(),
		Area:       q.Area(),
		PaperPrice: formatPrice(q.PaperPrice()),
		Price:      formatPrice(q.Price()),
	}
	if q.Shape != nil {
		v.Shape = string(q.Shape.Kind())
	}
	if q.Paper != nil {
		v.Paper = string(q.Paper.Grade())
		v.Colour = paper.HumanReadable(q.Paper.Colour())
	}
	v.Bow = q.Bow.IsPresent()
	if card, ok := q.GiftCard.Get(); ok {
		msg := card.Message
		v.GiftCard = &msg
	}
	return v
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:     s.ID,
		OrderNumber:   s.current.Number(),
		Total:         formatPrice(s.current.TotalPrice()),
		ExportPending: s.exportPending,
	}
	snap.Quotes = viewsOf(s.current)
	if s.editing != noEdit {
		i := s.editing
		snap.Editing = &i
	}
	return snap
}

func viewsOf(o *order.Order) []QuoteView {
	quotes := o.Quotes()
	views := make([]QuoteView, 0, len(quotes))
	for i, q := range quotes {
		views = append(views, NewQuoteView(i, q))
	}
	return views
}

func formatPrice(amount float64) string {
	return pricing.Format(amount)
}
