package mdparser

import (
	"errors"
	"strings"

	"fjacquet/md-expense-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// cleanAmount removes the currency symbol and thousands separators.
func cleanAmount(text string) string {
	clean := strings.ReplaceAll(text, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	return strings.TrimSpace(clean)
}

// ParseAmount converts an amount cell such as "$1,234.56" to a decimal. On
// failure it returns zero together with a *parsererror.ParseError; callers
// that only want the best-effort value may ignore the error.
func ParseAmount(text string) (decimal.Decimal, error) {
	clean := cleanAmount(text)
	if clean == "" {
		return decimal.Zero, &parsererror.ParseError{
			Parser: parserName,
			Field:  "amount",
			Value:  text,
			Err:    errEmptyAmount,
		}
	}

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{
			Parser: parserName,
			Field:  "amount",
			Value:  text,
			Err:    err,
		}
	}
	return amount, nil
}
