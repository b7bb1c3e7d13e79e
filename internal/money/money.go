package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyMismatchError is returned when two amounts with different currency
// codes meet in an arithmetic operation or when an amount does not match the
// currency an order is fixed to.
type CurrencyMismatchError struct {
	Want string
	Got  string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: want %s, got %s", e.Want, e.Got)
}

// Amount is an exact decimal monetary value tagged with a currency code.
// Arithmetic never rounds; rounding happens only in Display.
type Amount struct {
	value    decimal.Decimal
	currency string
}

// New parses a decimal string into an Amount.
func New(value, currency string) (Amount, error) {
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return Amount{}, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return Amount{value: d, currency: cur}, nil
}

// FromInt builds an Amount from whole currency units.
func FromInt(units int64, currency string) (Amount, error) {
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: decimal.NewFromInt(units), currency: cur}, nil
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Amount {
	cur, err := normalizeCurrency(currency)
	if err != nil {
		cur = strings.ToUpper(strings.TrimSpace(currency))
	}
	return Amount{currency: cur}
}

func normalizeCurrency(currency string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if len(cur) != 3 {
		return "", fmt.Errorf("invalid currency code %q", currency)
	}
	for _, r := range cur {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", currency)
		}
	}
	return cur, nil
}

// Currency returns the ISO currency code.
func (a Amount) Currency() string { return a.currency }

// SameCurrency reports whether b carries the same currency code as a.
func (a Amount) SameCurrency(b Amount) bool { return a.currency == b.currency }

// Add returns a+b or a CurrencyMismatchError.
func (a Amount) Add(b Amount) (Amount, error) {
	if !a.SameCurrency(b) {
		return Amount{}, &CurrencyMismatchError{Want: a.currency, Got: b.currency}
	}
	return Amount{value: a.value.Add(b.value), currency: a.currency}, nil
}

// Sub returns a-b or a CurrencyMismatchError.
func (a Amount) Sub(b Amount) (Amount, error) {
	if !a.SameCurrency(b) {
		return Amount{}, &CurrencyMismatchError{Want: a.currency, Got: b.currency}
	}
	return Amount{value: a.value.Sub(b.value), currency: a.currency}, nil
}

// MulInt scales the amount by an integer quantity.
func (a Amount) MulInt(n int64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(n)), currency: a.currency}
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{value: a.value.Neg(), currency: a.currency}
}

// IsZero reports whether the amount equals zero.
func (a Amount) IsZero() bool { return a.value.IsZero() }

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool { return a.value.IsNegative() }

// IsWholeUnits reports whether the amount has no fractional part.
func (a Amount) IsWholeUnits() bool { return a.value.IsInteger() }

// Cmp compares two amounts of the same currency (-1, 0, +1).
func (a Amount) Cmp(b Amount) (int, error) {
	if !a.SameCurrency(b) {
		return 0, &CurrencyMismatchError{Want: a.currency, Got: b.currency}
	}
	return a.value.Cmp(b.value), nil
}

// Equal reports value and currency equality.
func (a Amount) Equal(b Amount) bool {
	return a.currency == b.currency && a.value.Equal(b.value)
}

// String renders the exact value without rounding.
func (a Amount) String() string { return a.value.String() }

// Display renders the amount at two fraction digits, rounding half-to-even.
func (a Amount) Display() string { return a.value.StringFixedBank(2) }

type amountJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON renders `{"amount":"325.50","currency":"KES"}`.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{Amount: a.Display(), Currency: a.currency})
}

// UnmarshalJSON parses the wire shape produced by MarshalJSON.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
