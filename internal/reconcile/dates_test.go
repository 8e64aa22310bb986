package reconcile

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	kickoff := time.Date(2026, time.February, 22, 19, 30, 0, 0, time.UTC)
	midnight := time.Date(2026, time.February, 22, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
		ok   bool
	}{
		{name: "rfc3339", in: "2026-02-22T19:30:00Z", want: kickoff, ok: true},
		{name: "offset with millis", in: "2026-02-22T21:30:00.000+02:00", want: kickoff, ok: true},
		{name: "no zone", in: "2026-02-22T19:30:00", want: kickoff, ok: true},
		{name: "space separated", in: "2026-02-22 19:30:00", want: kickoff, ok: true},
		{name: "date only", in: "2026-02-22", want: midnight, ok: true},
		{name: "us date", in: "02/22/2026", want: midnight, ok: true},
		{name: "day first date", in: "22/02/2026", want: midnight, ok: true},
		{name: "compact date", in: "20260222", want: midnight, ok: true},
		{name: "epoch seconds", in: float64(1771788600), want: kickoff, ok: true},
		{name: "epoch millis", in: int64(1771788600000), want: kickoff, ok: true},
		{name: "json number", in: json.Number("1771788600"), want: kickoff, ok: true},
		{name: "time value", in: kickoff.In(time.FixedZone("EST", -5*3600)), want: kickoff, ok: true},
		{name: "garbage", in: "tomorrow-ish", ok: false},
		{name: "empty", in: "   ", ok: false},
		{name: "nil", in: nil, ok: false},
		{name: "zero epoch", in: float64(0), ok: false},
		{name: "bool", in: true, ok: false},
	}

	for _, tc := range tests {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok {
			t.Fatalf("%s: unexpected ok: got=%v want=%v", tc.name, ok, tc.ok)
		}
		if ok && !got.Equal(tc.want) {
			t.Fatalf("%s: unexpected time: got=%s want=%s", tc.name, got, tc.want)
		}
		if ok && got.Location() != time.UTC {
			t.Fatalf("%s: expected UTC, got %s", tc.name, got.Location())
		}
	}
}

func TestFormatISOMillis(t *testing.T) {
	in := time.Date(2026, time.February, 22, 20, 30, 0, 5_000_000, time.FixedZone("CET", 3600))
	if got := FormatISOMillis(in); got != "2026-02-22T19:30:00.005Z" {
		t.Fatalf("unexpected format: %s", got)
	}
}
