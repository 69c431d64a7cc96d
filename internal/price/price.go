// Package price renders integer minor-unit amounts for display.
//
// Amounts are carried as int64 minor units everywhere (1299 means $12.99).
// Formatting is the only place a decimal point appears, and it is string
// arithmetic, not float math, so 1299 always renders as 12.99 exactly.
package price

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders minor-unit amounts in one currency.
type Formatter struct {
	unit    currency.Unit
	scale   int
	pow     int64
	printer *message.Printer
}

// NewFormatter creates a formatter for an ISO 4217 currency code.
// The code determines the minor-unit scale: USD has two decimal places,
// JPY has none.
func NewFormatter(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	pow := int64(1)
	for i := 0; i < scale; i++ {
		pow *= 10
	}

	return &Formatter{
		unit:    unit,
		scale:   scale,
		pow:     pow,
		printer: message.NewPrinter(language.AmericanEnglish),
	}, nil
}

// Code returns the ISO 4217 code the formatter renders.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders a minor-unit amount, e.g. 1299 as "USD 12.99" and
// 1234567 as "USD 12,345.67". Zero-decimal currencies omit the point:
// 1299 JPY renders as "JPY 1,299".
func (f *Formatter) Format(minor int64) string {
	var b strings.Builder
	b.WriteString(f.unit.String())
	b.WriteByte(' ')

	if minor < 0 {
		b.WriteByte('-')
		minor = -minor
	}

	whole := minor / f.pow
	b.WriteString(f.printer.Sprintf("%d", whole))

	if f.scale > 0 {
		frac := minor % f.pow
		fmt.Fprintf(&b, ".%0*d", f.scale, frac)
	}

	return b.String()
}

// Format is a convenience for one-off rendering. It falls back to a bare
// "<CODE> <minor>" form when the currency code is unknown rather than
// erroring, since display formatting should never block a trace.
func Format(minor int64, code string) string {
	f, err := NewFormatter(code)
	if err != nil {
		return fmt.Sprintf("%s %d", code, minor)
	}
	return f.Format(minor)
}
