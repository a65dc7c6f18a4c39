package mysql

import (
	"testing"
	"time"
)

func TestFormatValueTemporalLayouts(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		kind FieldKind
		want string
	}{
		{name: "date", kind: KindDate, want: "2026-03-14"},
		{name: "time", kind: KindTime, want: "09:26:53"},
		{name: "datetime", kind: KindDateTime, want: "2026-03-14 09:26:53"},
		{name: "timestamp", kind: KindTimestamp, want: "2026-03-14 09:26:53"},
		{name: "year falls back to datetime layout", kind: KindYear, want: "2026-03-14 09:26:53"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatValue(NewField(tt.kind, "c"), at)
			if !ok {
				t.Fatal("FormatValue() reported NULL")
			}
			if got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValueDecimalText(t *testing.T) {
	f := NewField(KindDecimal, "price")

	// The driver hands decimals over as raw text; trailing zeros and the
	// full scale must survive untouched.
	t.Run("bytes pass through exactly", func(t *testing.T) {
		got, ok := FormatValue(f, []byte("1234.5600"))
		if !ok || got != "1234.5600" {
			t.Errorf("FormatValue() = %q, %v, want %q", got, ok, "1234.5600")
		}
	})

	t.Run("string passes through exactly", func(t *testing.T) {
		got, ok := FormatValue(f, "0.30000000000000004")
		if !ok || got != "0.30000000000000004" {
			t.Errorf("FormatValue() = %q, %v", got, ok)
		}
	})

	t.Run("floats render via Sprint", func(t *testing.T) {
		if got, _ := FormatValue(f, float64(2.5)); got != "2.5" {
			t.Errorf("FormatValue(float64) = %q, want %q", got, "2.5")
		}
		if got, _ := FormatValue(f, float32(2.5)); got != "2.5" {
			t.Errorf("FormatValue(float32) = %q, want %q", got, "2.5")
		}
	})
}

func TestFormatValueScalars(t *testing.T) {
	f := NewField(KindTinyInt, "flag")

	if got, ok := FormatValue(f, nil); ok || got != "" {
		t.Errorf("FormatValue(nil) = %q, %v, want NULL", got, ok)
	}
	if got, _ := FormatValue(f, true); got != "1" {
		t.Errorf("FormatValue(true) = %q, want %q", got, "1")
	}
	if got, _ := FormatValue(f, false); got != "0" {
		t.Errorf("FormatValue(false) = %q, want %q", got, "0")
	}
	if got, _ := FormatValue(f, int64(-7)); got != "-7" {
		t.Errorf("FormatValue(int64) = %q, want %q", got, "-7")
	}
	if got, _ := FormatValue(f, uint32(7)); got != "7" {
		t.Errorf("FormatValue(uint32) = %q, want %q", got, "7")
	}
}
