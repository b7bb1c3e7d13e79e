package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustNew(t *testing.T, value, currency string) Amount {
	t.Helper()
	a, err := New(value, currency)
	if err != nil {
		t.Fatalf("New(%q, %q): %v", value, currency, err)
	}
	return a
}

func TestNewRejectsBadCurrency(t *testing.T) {
	for _, cur := range []string{"", "K", "KESH", "12$"} {
		if _, err := New("1.00", cur); err == nil {
			t.Fatalf("expected error for currency %q", cur)
		}
	}
}

func TestNewNormalizesCurrency(t *testing.T) {
	a := mustNew(t, "10", " kes ")
	if a.Currency() != "KES" {
		t.Fatalf("expected KES, got %s", a.Currency())
	}
}

func TestAddSubSameCurrency(t *testing.T) {
	a := mustNew(t, "300.00", "KES")
	b := mustNew(t, "25.50", "KES")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Display() != "325.50" {
		t.Fatalf("expected 325.50, got %s", sum.Display())
	}
	diff, err := sum.Sub(mustNew(t, "20.00", "KES"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Display() != "305.50" {
		t.Fatalf("expected 305.50, got %s", diff.Display())
	}
}

func TestAddMismatchedCurrency(t *testing.T) {
	a := mustNew(t, "1.00", "KES")
	b := mustNew(t, "1.00", "USD")
	_, err := a.Add(b)
	var mismatch *CurrencyMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected CurrencyMismatchError, got %v", err)
	}
	if mismatch.Want != "KES" || mismatch.Got != "USD" {
		t.Fatalf("unexpected mismatch fields: %+v", mismatch)
	}
}

func TestMulIntAndNeg(t *testing.T) {
	unit := mustNew(t, "150.00", "KES")
	total := unit.MulInt(2)
	if total.Display() != "300.00" {
		t.Fatalf("expected 300.00, got %s", total.Display())
	}
	if !total.Neg().IsNegative() {
		t.Fatalf("expected negated amount to be negative")
	}
}

func TestDisplayRoundsHalfToEven(t *testing.T) {
	cases := map[string]string{
		"2.345": "2.34",
		"2.355": "2.36",
		"2.5":   "2.50",
	}
	for in, want := range cases {
		a := mustNew(t, in, "KES")
		if got := a.Display(); got != want {
			t.Fatalf("Display(%s): expected %s, got %s", in, want, got)
		}
	}
}

func TestIsWholeUnits(t *testing.T) {
	if !mustNew(t, "200", "KES").IsWholeUnits() {
		t.Fatalf("200 should be whole units")
	}
	if mustNew(t, "200.50", "KES").IsWholeUnits() {
		t.Fatalf("200.50 should not be whole units")
	}
}

func TestCmp(t *testing.T) {
	a := mustNew(t, "100", "KES")
	b := mustNew(t, "200", "KES")
	got, err := a.Cmp(b)
	if err != nil || got != -1 {
		t.Fatalf("expected -1, got %d err=%v", got, err)
	}
	if _, err := a.Cmp(mustNew(t, "1", "USD")); err == nil {
		t.Fatalf("expected currency mismatch on Cmp")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := mustNew(t, "325.5", "KES")
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"amount":"325.50","currency":"KES"}` {
		t.Fatalf("unexpected json: %s", data)
	}
	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(a) {
		t.Fatalf("round trip mismatch: %s vs %s", back.Display(), a.Display())
	}
}
