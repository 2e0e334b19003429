// Package session holds the state a quoting front-end works against: one
// current order, whether it still needs exporting, and at most one quote open
// for editing.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/wrapping-quotes/internal/obs"
	"github.com/noah-isme/wrapping-quotes/internal/order"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
)

var (
	// ErrEditInProgress is returned when an operation needs the edit slot that another quote holds.
	ErrEditInProgress = errors.New("another quote is being edited")
	// ErrNoEditInProgress is returned when committing without an open edit.
	ErrNoEditInProgress = errors.New("no quote is being edited")
	// ErrQuoteBeingEdited is returned when deleting the quote that is open for editing.
	ErrQuoteBeingEdited = errors.New("cannot delete the quote currently being edited")
	// ErrEmptyOrder is returned when exporting an order without quotes.
	ErrEmptyOrder = errors.New("cannot export an empty order")
)

const noEdit = -1

var tracer = otel.Tracer("github.com/noah-isme/wrapping-quotes/internal/session")

// Exporter writes an order receipt and returns where it was written.
type Exporter interface {
	Export(o *order.Order, at time.Time) (string, error)
}

// DirExporter writes receipts into a directory.
type DirExporter struct {
	Dir string
}

// Export implements Exporter.
func (e DirExporter) Export(o *order.Order, at time.Time) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	return order.Export(dir, o, at)
}

// Rollover reports the outcome of starting a new order.
type Rollover struct {
	ExportPath  string `json:"exportPath,omitempty"`
	OrderNumber int    `json:"orderNumber"`
}

// Session serialises every operation on its order behind one mutex.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	seq           *order.Sequence
	exporter      Exporter
	now           func() time.Time
	logger        zerolog.Logger
	current       *order.Order
	exportPending bool
	editing       int
}

func newSession(id string, seq *order.Sequence, exporter Exporter, now func() time.Time, logger zerolog.Logger) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now(),
		seq:       seq,
		exporter:  exporter,
		now:       now,
		logger:    logger.With().Str("session_id", id).Logger(),
		editing:   noEdit,
	}
	s.startOrder()
	return s
}

// Snapshot returns a read-only view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddQuote appends q to the current order and returns its position.
func (s *Session) AddQuote(q quote.Quote) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit {
		return 0, ErrEditInProgress
	}
	i := s.current.Add(q)
	s.exportPending = true
	obs.RecordQuoteSaved(quoteLabels(q, "add"))
	s.logger.Info().Int("order", s.current.Number()).Int("index", i).Str("price", formatPrice(q.Price())).Msg("quote added")
	return i, nil
}

// BeginEdit opens quote i for editing and returns its current value.
func (s *Session) BeginEdit(i int) (quote.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit && s.editing != i {
		return quote.Quote{}, ErrEditInProgress
	}
	q, err := s.current.At(i)
	if err != nil {
		return quote.Quote{}, err
	}
	s.editing = i
	return q, nil
}

// CommitEdit saves q over the quote open for editing and closes the edit.
func (s *Session) CommitEdit(q quote.Quote) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == noEdit {
		return 0, ErrNoEditInProgress
	}
	i := s.editing
	if err := s.replaceLocked(i, q); err != nil {
		return 0, err
	}
	return i, nil
}

// CancelEdit closes any open edit without saving.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = noEdit
}

// ReplaceQuote saves q at position i. It fails while a different quote is
// open for editing and closes the edit when it was on i.
func (s *Session) ReplaceQuote(i int, q quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit && s.editing != i {
		return ErrEditInProgress
	}
	return s.replaceLocked(i, q)
}

// DeleteQuote removes the quote at position i.
func (s *Session) DeleteQuote(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit && s.editing == i {
		return ErrQuoteBeingEdited
	}
	if err := s.current.Remove(i); err != nil {
		return err
	}
	if s.editing != noEdit && i < s.editing {
		s.editing--
	}
	s.exportPending = true
	obs.RecordQuoteDeleted()
	s.logger.Info().Int("order", s.current.Number()).Int("index", i).Msg("quote deleted")
	return nil
}

// Export writes the current order's receipt. The order is left as it is.
func (s *Session) Export(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked(ctx)
}

// NewOrder discards the current order and starts the next one. With
// exportFirst a pending, non-empty order is exported before it is dropped; a
// failed export keeps the current order.
func (s *Session) NewOrder(ctx context.Context, exportFirst bool) (Rollover, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit {
		return Rollover{}, ErrEditInProgress
	}
	var result Rollover
	if exportFirst && s.exportPending && s.current.Len() > 0 {
		path, err := s.exportLocked(ctx)
		if err != nil {
			return Rollover{}, err
		}
		result.ExportPath = path
	}
	result.OrderNumber = s.startOrder()
	return result, nil
}

// Checkout exports a non-empty order and starts a new one.
func (s *Session) Checkout(ctx context.Context) (Rollover, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing != noEdit {
		return Rollover{}, ErrEditInProgress
	}
	var result Rollover
	if s.current.Len() > 0 {
		path, err := s.exportLocked(ctx)
		if err != nil {
			return Rollover{}, err
		}
		result.ExportPath = path
	}
	result.OrderNumber = s.startOrder()
	return result, nil
}

// close exports a pending order when asked to, before the session is dropped.
// An open edit is discarded once nothing is left to export. A failed export
// leaves the session untouched.
func (s *Session) close(ctx context.Context, exportFirst bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var path string
	if exportFirst && s.exportPending && s.current.Len() > 0 {
		p, err := s.exportLocked(ctx)
		if err != nil {
			return "", err
		}
		path = p
	}
	s.editing = noEdit
	return path, nil
}

func (s *Session) replaceLocked(i int, q quote.Quote) error {
	if err := s.current.Replace(i, q); err != nil {
		return err
	}
	s.editing = noEdit
	s.exportPending = true
	obs.RecordQuoteSaved(quoteLabels(q, "edit"))
	s.logger.Info().Int("order", s.current.Number()).Int("index", i).Str("price", formatPrice(q.Price())).Msg("quote updated")
	return nil
}

func (s *Session) exportLocked(ctx context.Context) (string, error) {
	_, span := tracer.Start(ctx, "session.export")
	defer span.End()
	span.SetAttributes(
		attribute.Int("order.number", s.current.Number()),
		attribute.Int("order.quotes", s.current.Len()),
	)

	if s.current.Len() == 0 {
		obs.RecordExport("empty")
		return "", ErrEmptyOrder
	}
	path, err := s.exporter.Export(s.current, s.now())
	if err != nil {
		obs.RecordExport("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		s.logger.Error().Err(err).Int("order", s.current.Number()).Msg("export order")
		return "", err
	}
	s.exportPending = false
	obs.RecordExport("ok")
	s.logger.Info().Int("order", s.current.Number()).Str("path", path).Msg("order exported")
	return path, nil
}

func (s *Session) startOrder() int {
	s.current = order.New(s.seq.Next())
	s.exportPending = false
	obs.RecordOrderStarted()
	return s.current.Number()
}

func quoteLabels(q quote.Quote, action string) (string, string, string) {
	var shapeKind, grade string
	if q.Shape != nil {
		shapeKind = string(q.Shape.Kind())
	}
	if q.Paper != nil {
		grade = string(q.Paper.Grade())
	}
	return shapeKind, grade, action
}
