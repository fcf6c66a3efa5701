package vaccinations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBirthDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  string
		want time.Time
	}{
		{"zero days is today", "0 days", now},
		{"garbage falls back to now", "garbage text", now},
		{"empty string", "", now},
		{"days", "10 days", time.Date(2024, 2, 20, 10, 30, 0, 0, time.UTC)},
		{"months", "3 months", time.Date(2023, 12, 1, 10, 30, 0, 0, time.UTC)},
		{"years case insensitive", "2 YEARS", time.Date(2022, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"singular unit", "1 month", time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)},
		{"leading spaces", "   5 days old", time.Date(2024, 2, 25, 10, 30, 0, 0, time.UTC)},
		{"no leading number uses zero", "months: 5", now},
		{"day wins over month", "1 day and 2 months", time.Date(2024, 2, 29, 10, 30, 0, 0, time.UTC)},
		{"month wins over year", "6 months, almost a year", time.Date(2023, 9, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateBirthDate(tc.age, now))
		})
	}
}

func TestEstimateBirthDate_MonthOverflowNormalizes(t *testing.T) {
	// 31 may - 3 meses => 31 feb => 2 mar (2024 es bisiesto)
	now := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), EstimateBirthDate("3 months", now))
}

func TestLeadingInt(t *testing.T) {
	assert.Equal(t, 12, leadingInt("12abc"))
	assert.Equal(t, -3, leadingInt("-3 days"))
	assert.Equal(t, 7, leadingInt("+7"))
	assert.Equal(t, 0, leadingInt("abc"))
	assert.Equal(t, 0, leadingInt(""))
}
