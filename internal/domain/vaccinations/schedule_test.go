package vaccinations

import (
	"testing"
	"time"

	"child-care-tracker/internal/platform/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	births := []time.Time{
		date(2024, 1, 1),
		date(2023, 8, 31),
		time.Date(2024, 2, 29, 23, 59, 0, 0, time.FixedZone("ART", -3*3600)),
	}
	for _, b := range births {
		first := GenerateSchedule(b, nil)
		second := GenerateSchedule(b, nil)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("schedule not deterministic for %s (-first +second):\n%s", b, diff)
		}
	}
}

func TestGenerateSchedule_SizeIDsAndOrder(t *testing.T) {
	entries := GenerateSchedule(date(2024, 1, 1), nil)
	require.Len(t, entries, 23)
	assert.Equal(t, ScheduleSize(), len(entries))

	seen := map[string]bool{}
	for i, e := range entries {
		assert.False(t, seen[e.ID], "duplicated id %s", e.ID)
		seen[e.ID] = true
		if i > 0 {
			assert.False(t, e.ScheduledDate.Before(entries[i-1].ScheduledDate), "not sorted at %d", i)
		}
	}

	months := map[int]bool{}
	for _, e := range entries {
		months[e.AgeAtDoseMonths] = true
	}
	for _, m := range Milestones {
		assert.True(t, months[m], "milestone %d without doses", m)
	}
}

func TestGenerateSchedule_StableWithinDate(t *testing.T) {
	entries := GenerateSchedule(date(2024, 1, 1), nil)

	var twoMonths []string
	for _, e := range entries {
		if e.ScheduledDate.Equal(date(2024, 3, 1)) {
			twoMonths = append(twoMonths, e.ID)
		}
	}
	assert.Equal(t, []string{"dtap-1", "hib-1", "ipv-1", "pcv13-1", "rv-1"}, twoMonths)
}

func TestGenerateSchedule_CalendarMonthAdd(t *testing.T) {
	entries := GenerateSchedule(date(2024, 1, 31), nil)
	byID := map[string]Entry{}
	for _, e := range entries {
		byID[e.ID] = e
	}

	// 31 ene + 1 mes => 31 feb => 2 mar
	assert.Equal(t, date(2024, 3, 2), byID["hepb-2"].ScheduledDate)
	assert.Equal(t, date(2024, 3, 31), byID["dtap-1"].ScheduledDate)
	assert.Equal(t, date(2025, 1, 31), byID["mmr-1"].ScheduledDate)
	assert.Equal(t, 0, byID["hepb-1"].AgeAtDoseDays)
	assert.Equal(t, 31, byID["hepb-2"].AgeAtDoseDays)
	assert.Equal(t, 366, byID["mmr-1"].AgeAtDoseDays)
}

func TestGenerateSchedule_IgnoresTimeOfDay(t *testing.T) {
	b := time.Date(2024, 1, 1, 22, 15, 0, 0, time.UTC)
	entries := GenerateSchedule(b, nil)
	require.NotEmpty(t, entries)
	assert.Equal(t, date(2024, 1, 1), entries[0].ScheduledDate)
}

func TestGenerateSchedule_InvalidBirthDateIsEmptyAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	entries := GenerateSchedule(time.Time{}, logger.NewWithZap(zap.New(core)))
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}
