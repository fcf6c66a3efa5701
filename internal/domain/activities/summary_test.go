package activities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	end := at(14, 30)

	items := []Activity{
		{ID: "s1", Type: TypeSleep, OccurredAt: at(13, 0), EndedAt: &end, Status: StatusActive},
		{ID: "s2", Type: TypeSleep, OccurredAt: at(20, 0), Quantity: qty(45), Unit: UnitMinutes, Status: StatusActive},
		{ID: "f1", Type: TypeFeeding, OccurredAt: at(7, 0), Quantity: qty(120), Unit: UnitMilliliters, Status: StatusActive},
		{ID: "f2", Type: TypeFeeding, OccurredAt: at(11, 0), Quantity: qty(90), Unit: UnitMilliliters, Status: StatusActive},
		{ID: "f3", Type: TypeFeeding, OccurredAt: at(12, 0), Quantity: qty(200), Unit: UnitMilliliters, Status: StatusVoided},
		{ID: "g1", Type: TypeGrowth, OccurredAt: at(9, 0), Quantity: qty(6.1), Unit: UnitKilograms, Status: StatusActive},
		{ID: "g2", Type: TypeGrowth, OccurredAt: at(10, 0), Quantity: qty(61), Unit: UnitCentimeters, Status: StatusActive},
		{ID: "d1", Type: TypeDiaper, OccurredAt: at(8, 0), Status: StatusActive},
		{ID: "other-day", Type: TypeDiaper, OccurredAt: day.Add(-time.Minute), Status: StatusActive},
	}

	sum := Summarize(items, day)

	assert.Equal(t, day, sum.Date)
	assert.Equal(t, 2, sum.Counts[TypeSleep])
	assert.Equal(t, 2, sum.Counts[TypeFeeding])
	assert.Equal(t, 1, sum.Counts[TypeDiaper])
	assert.Equal(t, 90+45, sum.SleepMinutes)
	assert.InDelta(t, 210, sum.FeedingML, 0.001)
	require.NotNil(t, sum.LastGrowth)
	assert.Equal(t, "g2", sum.LastGrowth.ID)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sum.Date)
	assert.Empty(t, sum.Counts)
	assert.Zero(t, sum.SleepMinutes)
	assert.Nil(t, sum.LastGrowth)
}
