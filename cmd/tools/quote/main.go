// Command quote prices one gift-wrapping configuration from the command line
// and optionally writes it out as a single-quote order receipt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/noah-isme/wrapping-quotes/internal/order"
	"github.com/noah-isme/wrapping-quotes/internal/translate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		in       translate.QuoteInput
		d1       = fs.String("d1", "", "first dimension in cm (cube length, cuboid width, cylinder radius)")
		d2       = fs.String("d2", "", "second dimension in cm (cuboid height, cylinder depth)")
		d3       = fs.String("d3", "", "third dimension in cm (cuboid depth)")
		export   = fs.Bool("export", false, "write a receipt for a one-quote order")
		dir      = fs.String("dir", ".", "directory receipts are written to")
		orderNum = fs.Int("order", 1, "order number printed on the receipt")
	)
	fs.StringVar(&in.Title, "title", "", "quote title")
	fs.StringVar(&in.Shape, "shape", "", "cube, cuboid or cylinder")
	fs.StringVar(&in.Paper, "paper", "", "cheap or expensive")
	fs.StringVar(&in.Colour, "colour", "", "paper colour name or tag")
	fs.BoolVar(&in.Bow, "bow", false, "add a bow")
	fs.BoolVar(&in.GiftCard, "giftcard", false, "add a gift card")
	fs.StringVar(&in.Message, "message", "", "gift card message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	in.Dimensions = []string{*d1, *d2, *d3}

	q, err := translate.BuildQuote(in)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, q.String())

	if !*export {
		return 0
	}
	o := order.New(*orderNum)
	o.Add(q)
	path, err := order.Export(*dir, o, now())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, path)
	return 0
}
