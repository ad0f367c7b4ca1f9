package duty

import "testing"

func TestParse_CurrencyPerUnit(t *testing.T) {
	cases := []struct {
		in     string
		amount float64
		unit   string
	}{
		{"Rs. 42 / kg", 42, "INR/kg"},
		{"₹42/kg", 42, "INR/kg"},
		{"120/kg", 120, "INR/kg"},
		{"Rs 2.5/litre", 2.5, "INR/litre"},
	}
	for _, c := range cases {
		v, ok := Parse(c.in)
		if !ok {
			t.Errorf("%q: expected parse to succeed", c.in)
			continue
		}
		if v.Amount != c.amount || v.Unit != c.unit {
			t.Errorf("%q: expected (%v, %q), got (%v, %q)", c.in, c.amount, c.unit, v.Amount, v.Unit)
		}
	}
}

func TestParse_PlainNumberIsPercentage(t *testing.T) {
	v, ok := Parse("10")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if v.Amount != 0.10 || v.Unit != PercentUnit {
		t.Errorf("expected (0.10, percentage), got (%v, %q)", v.Amount, v.Unit)
	}
}

func TestParse_Unparseable(t *testing.T) {
	for _, in := range []string{"", "  ", "Free", "N/A", "10-20"} {
		if _, ok := Parse(in); ok {
			t.Errorf("%q: expected parse to fail", in)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(Value{Amount: 0.10, Unit: PercentUnit}); got != "10.00%" {
		t.Errorf("expected 10.00%%, got %q", got)
	}
	if got := Format(Value{Amount: 42, Unit: "INR/kg"}); got != "42.00 INR/kg" {
		t.Errorf("expected 42.00 INR/kg, got %q", got)
	}
}

func TestDisplay_RoundTrip(t *testing.T) {
	if got := Display("7.5"); got != "7.50%" {
		t.Errorf("expected 7.50%%, got %q", got)
	}
	if got := Display("not a duty"); got != "" {
		t.Errorf("expected empty display, got %q", got)
	}
}
