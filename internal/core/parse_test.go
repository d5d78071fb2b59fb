package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2023-01-05", NewDate(2023, 1, 5), true},
		{"2023-01-05 00:00:00", NewDate(2023, 1, 5), true},
		{"01/05/2023", NewDate(2023, 1, 5), true},
		{" 2023-12-31 ", NewDate(2023, 12, 31), true},
		{"44931", NewDate(2023, 1, 5), true}, // Excel serial for 2023-01-05
		{"", Date{}, false},
		{"not-a-date", Date{}, false},
		{"2023-13-01", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.want.Time) {
				t.Fatalf("%q: expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{"08:00:00", Clock{Hour: 8}, true},
		{"23:59:59", Clock{Hour: 23, Minute: 59, Second: 59}, true},
		{"00:00:00", Clock{}, true},
		{"8:00", Clock{}, false},
		{"24:00:00", Clock{}, false},
		{"08:00", Clock{}, false},
		{"", Clock{}, false},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q: expected %+v, got %+v (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"3.50", "3.5", true},
		{"3,50", "3.5", true},
		{"0", "0", true},
		{"12.345", "12.345", true}, // full precision retained
		{"", "", false},
		{"abc", "", false},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q: expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
