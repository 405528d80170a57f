package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hours is a duration in hundredths of an hour, matching the two decimal
// places effort is recorded with.
type Hours int64

// MaxHours is the largest magnitude a NUMERIC(10,2) column holds, 99999999.99.
const MaxHours Hours = 9_999_999_999

// HoursFromFloat rounds f to the nearest hundredth.
func HoursFromFloat(f float64) Hours {
	return Hours(math.Round(f * 100))
}

// ParseHours accepts values like "4", "3.5" or "2.25".
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty hours value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	h := HoursFromFloat(f)
	if math.Abs(f) > MaxHours.Float64() || h > MaxHours || h < -MaxHours {
		return 0, fmt.Errorf("invalid hours %q: at most %s", s, MaxHours)
	}
	return h, nil
}

func (h Hours) Float64() float64 {
	return float64(h) / 100
}

func (h Hours) IsPositive() bool {
	return h > 0
}

// String renders h with exactly two decimals, e.g. "7.00".
func (h Hours) String() string {
	sign := ""
	v := uint64(h)
	if h < 0 {
		sign = "-"
		v = -v // two's complement magnitude, exact for math.MinInt64
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
