// Package amount renders monetary amounts as Turkish text, the form printed
// on e-invoices and e-vouchers ("YALNIZ : BEŞYÜZYETMİŞALTI TL KIRKBEŞ Kr.").
package amount

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxLira is the largest whole-lira amount that can be written out.
const MaxLira = 999999

// ErrOutOfRange is returned for negative amounts and amounts above MaxLira.
var ErrOutOfRange = errors.New("amount: must be between 0 and 999999")

const (
	prefix = "YALNIZ : "
	zero   = "SIFIR"
)

var (
	ones     = [10]string{"", "BİR", "İKİ", "ÜÇ", "DÖRT", "BEŞ", "ALTI", "YEDİ", "SEKİZ", "DOKUZ"}
	tens     = [10]string{"", "ON", "YİRMİ", "OTUZ", "KIRK", "ELLİ", "ALTMIŞ", "YETMİŞ", "SEKSEN", "DOKSAN"}
	hundreds = [10]string{"", "YÜZ", "İKİYÜZ", "ÜÇYÜZ", "DÖRTYÜZ", "BEŞYÜZ", "ALTIYÜZ", "YEDİYÜZ", "SEKİZYÜZ", "DOKUZYÜZ"}
)

var hundred = decimal.NewFromInt(100)

// ToText writes d out in Turkish. Kuruş beyond two digits are truncated,
// not rounded.
func ToText(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", fmt.Errorf("%w: got %s", ErrOutOfRange, d.String())
	}

	lira := d.Truncate(0)
	if lira.GreaterThan(decimal.NewFromInt(MaxLira)) {
		return "", fmt.Errorf("%w: got %s", ErrOutOfRange, d.String())
	}
	kurus := d.Sub(lira).Mul(hundred).Truncate(0)

	return prefix + words(lira.IntPart()) + " TL " + words(kurus.IntPart()) + " Kr.", nil
}

// Parse reads an amount written with either "," or "." as decimal separator.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount: parse %q: %w", s, err)
	}
	return d, nil
}

// FormatString parses s and writes it out in Turkish.
func FormatString(s string) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", err
	}
	return ToText(d)
}

// words writes n (0-999999) without spaces, the way amounts are printed.
func words(n int64) string {
	if n == 0 {
		return zero
	}

	var b strings.Builder
	if th := n / 1000; th > 0 {
		// "BİN", never "BİRBİN".
		if th > 1 {
			b.WriteString(belowThousand(th))
		}
		b.WriteString("BİN")
	}
	b.WriteString(belowThousand(n % 1000))
	return b.String()
}

func belowThousand(n int64) string {
	return hundreds[n/100] + tens[n%100/10] + ones[n%10]
}
