package order

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noah-isme/wrapping-quotes/internal/pricing"
	"github.com/noah-isme/wrapping-quotes/internal/quote"
)

// TimestampLayout formats export times as YYYY-MM-DD HHMM.
const TimestampLayout = "2006-01-02 1504"

// ErrExport wraps every failure to write a receipt file.
var ErrExport = errors.New("export order")

// maxNameAttempts caps the " (n)" suffixes tried when a receipt name is taken.
const maxNameAttempts = 100

var separator = strings.Repeat("-", 80)

// FileName returns the receipt file name for an order exported at at.
func FileName(number int, at time.Time) string {
	return fmt.Sprintf("%s Order %d.txt", at.Format(TimestampLayout), number)
}

// WriteReceipt renders the receipt for quotes to w.
func WriteReceipt(w io.Writer, number int, quotes []quote.Quote, at time.Time) error {
	ew := &errWriter{w: w}
	stamp := at.Format(TimestampLayout)
	ew.printf("%s\n\n", separator)
	ew.printf("\tWrapping Paper Quotes\n\n")
	ew.printf("\tDate Time:\t\t\t\t\t\t%s\n", stamp)
	ew.printf("\tOrder Number:\t\t\t\t\t%d\n", number)
	ew.printf("\tNumber of Quotes:\t\t\t\t%d\n\n", len(quotes))
	ew.printf("%s\n\n", separator)

	prices := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		price := q.Price()
		prices = append(prices, price)
		ew.printf("%s   (Total: GBP %s)\n", q.Title, pricing.Format(price))
		ew.printf("\t\t%s\n", describe(q.Shape))
		ew.printf("\t\t%s   (GBP %s)\n", describe(q.Paper), pricing.Format(q.PaperPrice()))
		if card, ok := q.GiftCard.Get(); ok {
			ew.printf("\t\t%s   (GBP %s)\n", card.String(), pricing.Format(card.Price()))
		}
		if bow, ok := q.Bow.Get(); ok {
			ew.printf("\t\t%s   (GBP %s)\n", bow.String(), pricing.Format(bow.Price()))
		}
		ew.printf("\n")
	}
	ew.printf("\nTotal price for this order: GBP %s\n", pricing.Format(pricing.Total(prices...)))
	return ew.err
}

// Export writes the receipt for o into dir and returns the file path. An
// existing receipt is never overwritten; a numbered suffix is added instead.
// The order itself is not modified.
func Export(dir string, o *Order, at time.Time) (path string, err error) {
	f, path, err := createUnique(dir, FileName(o.Number(), at))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrExport, path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
			path = ""
		}
	}()
	if err := WriteReceipt(f, o.Number(), o.Quotes(), at); err != nil {
		return path, fmt.Errorf("%w: write %s: %w", ErrExport, path, err)
	}
	return path, nil
}

func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		candidate := name
		if attempt > 1 {
			candidate = fmt.Sprintf("%s (%d)%s", base, attempt, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %q in %s", name, dir)
}

func describe(v fmt.Stringer) string {
	if v == nil {
		return "none"
	}
	return v.String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
