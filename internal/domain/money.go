package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the storefront's settlement currency.
const DefaultCurrency = "TRY"

var (
	ErrNegativeAmount   = errors.New("money amount cannot be negative")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money is an immutable non-negative amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney returns a Money value or ErrNegativeAmount.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return Money{amount: amount, currency: normalizeCurrency(currency)}, nil
}

// MustMoney is NewMoney for constants and tests. It panics on negative input.
func MustMoney(amount float64, currency string) Money {
	m, err := NewMoney(decimal.NewFromFloat(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero amount in currency.
func Zero(currency string) Money {
	return Money{amount: decimal.Zero, currency: normalizeCurrency(currency)}
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) sameCurrency(o Money) error {
	if m.Currency() != o.Currency() {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), o.Currency())
	}
	return nil
}

// Add returns m + o.
func (m Money) Add(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(o.amount), currency: m.Currency()}, nil
}

// Sub returns m - o. A negative result is an error.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.sameCurrency(o); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Sub(o.amount), m.Currency())
}

// Mul scales m by a non-negative factor.
func (m Money) Mul(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, fmt.Errorf("%w: factor %s", ErrNegativeAmount, factor)
	}
	return Money{amount: m.amount.Mul(factor), currency: m.Currency()}, nil
}

// Times scales m by a quantity. Negative quantities count as zero.
func (m Money) Times(qty int) Money {
	if qty < 0 {
		qty = 0
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))), currency: m.Currency()}
}

// Equal compares amount numerically, so 1.50 equals 1.5.
func (m Money) Equal(o Money) bool {
	return m.Currency() == o.Currency() && m.amount.Equal(o.amount)
}

func (m Money) GreaterThan(o Money) (bool, error) {
	if err := m.sameCurrency(o); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(o.amount), nil
}

func (m Money) LessThan(o Money) (bool, error) {
	if err := m.sameCurrency(o); err != nil {
		return false, err
	}
	return m.amount.LessThan(o.amount), nil
}

// Format renders "250.00 TRY".
func (m Money) Format() string {
	return m.amount.StringFixed(2) + " " + m.Currency()
}

func (m Money) String() string { return m.Format() }

type moneyJSON struct {
	Amount   json.RawMessage `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON writes the amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: json.RawMessage(m.amount.String()), Currency: m.Currency()})
}

// UnmarshalJSON accepts the amount as a number or a quoted string and
// rejects negative amounts.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount := decimal.Zero
	if len(raw.Amount) > 0 && string(raw.Amount) != "null" {
		if err := amount.UnmarshalJSON(raw.Amount); err != nil {
			return fmt.Errorf("money amount: %w", err)
		}
	}

	parsed, err := NewMoney(amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
