package dateparse

import (
	"testing"
	"time"
)

func TestScanTextKeywords(t *testing.T) {
	now := testNow()

	got := ScanText("quiero planes para hoy en el centro", now)
	if got == nil || !got.Time.Equal(time.Date(2024, time.November, 8, 0, 0, 0, 0, testLoc)) {
		t.Fatalf("ScanText hoy = %+v", got)
	}

	got = ScanText("algo para mañana, por favor", now)
	if got == nil || !got.Time.Equal(time.Date(2024, time.November, 9, 0, 0, 0, 0, testLoc)) {
		t.Fatalf("ScanText mañana = %+v", got)
	}
}

func TestScanTextEmbeddedPatterns(t *testing.T) {
	now := testNow()

	tests := []struct {
		name     string
		input    string
		wantTime time.Time
		wantGran Granularity
	}{
		{
			name:     "day month year",
			input:    "conciertos el 15 de noviembre de 2025 en el parque",
			wantTime: time.Date(2025, time.November, 15, 0, 0, 0, 0, testLoc),
			wantGran: GranularityDay,
		},
		{
			name:     "day month without year",
			input:    "ferias del 3 de diciembre",
			wantTime: time.Date(2024, time.December, 3, 0, 0, 0, 0, testLoc),
			wantGran: GranularityDay,
		},
		{
			name:     "month year",
			input:    "agenda cultural de noviembre 2025",
			wantTime: time.Date(2025, time.November, 1, 0, 0, 0, 0, testLoc),
			wantGran: GranularityMonth,
		},
		{
			name:     "bare month",
			input:    "eventos en diciembre",
			wantTime: time.Date(2024, time.December, 1, 0, 0, 0, 0, testLoc),
			wantGran: GranularityMonth,
		},
		{
			name:     "iso date",
			input:    "2024-11-20",
			wantTime: time.Date(2024, time.November, 20, 0, 0, 0, 0, testLoc),
			wantGran: GranularityDay,
		},
		{
			name:     "iso month",
			input:    "2025-03",
			wantTime: time.Date(2025, time.March, 1, 0, 0, 0, 0, testLoc),
			wantGran: GranularityMonth,
		},
		{
			name:     "slash date in text",
			input:    "qué hay el 20/11/2024 en la noche",
			wantTime: time.Date(2024, time.November, 20, 0, 0, 0, 0, testLoc),
			wantGran: GranularityDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanText(tt.input, now)
			if got == nil {
				t.Fatalf("ScanText(%q) = nil", tt.input)
			}
			if !got.Time.Equal(tt.wantTime) {
				t.Errorf("ScanText(%q) = %v, want %v", tt.input, got.Time, tt.wantTime)
			}
			if got.Granularity != tt.wantGran {
				t.Errorf("ScanText(%q) granularity = %q, want %q", tt.input, got.Granularity, tt.wantGran)
			}
		})
	}
}

func TestScanTextNoDate(t *testing.T) {
	now := testNow()

	// "planes 2025" matches the month-year shape but resolves to nothing;
	// the scan stops there instead of trying later patterns.
	for _, input := range []string{"", "eventos de rock en vivo", "algo barato por el centro", "planes 2025"} {
		if got := ScanText(input, now); got != nil {
			t.Errorf("ScanText(%q) = %+v, want nil", input, got)
		}
	}
}
