package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"child-care-tracker/internal/domain/vaccinations"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRunSchedule_Text(t *testing.T) {
	var buf bytes.Buffer
	err := runSchedule(&buf, &scheduleFlags{
		birthDate: "2025-01-01",
		today:     "2025-01-01",
		completed: []string{"hepb-1"},
		format:    "text",
		lang:      "en",
	}, fixedNow)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Birth date: 2025-01-01\n")
	assert.Contains(t, out, fmt.Sprintf("1 of %d doses completed", vaccinations.ScheduleSize()))
	assert.Contains(t, out, "  Jan 1, 2025 [Completed]")
	assert.Contains(t, out, "> Feb 1, 2025 [Upcoming]")
	assert.Contains(t, out, "[x] hepb-1")
}

func TestRunSchedule_JSONFromAge(t *testing.T) {
	var buf bytes.Buffer
	err := runSchedule(&buf, &scheduleFlags{age: "2 months", format: "json", lang: "es"}, fixedNow)
	require.NoError(t, err)

	var resp vaccinations.ScheduleResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.BirthDateEstimated)
	assert.Equal(t, "2024-11-01", resp.BirthDate)
	assert.Contains(t, resp.ProgressLabel, "dosis completadas")
	require.NotEmpty(t, resp.Groups)
}

func TestRunSchedule_ICS(t *testing.T) {
	var buf bytes.Buffer
	err := runSchedule(&buf, &scheduleFlags{name: "Luna", birthDate: "2025-01-01", format: "ics"}, fixedNow)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, buf.String(), "hepb-1@cli.child-care-tracker")
}

func TestRunSchedule_Errors(t *testing.T) {
	cases := map[string]*scheduleFlags{
		"no birth or age": {format: "text"},
		"bad birth date":  {birthDate: "01/01/2025"},
		"bad today":       {age: "1 month", today: "tomorrow"},
		"unknown entry":   {age: "1 month", completed: []string{"polio-9"}},
		"unknown format":  {age: "1 month", format: "pdf"},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			err := runSchedule(&bytes.Buffer{}, f, fixedNow)
			assert.Error(t, err)
		})
	}

	err := runSchedule(&bytes.Buffer{}, &scheduleFlags{age: "1 month", completed: []string{"polio-9"}}, fixedNow)
	assert.ErrorIs(t, err, vaccinations.ErrUnknownEntry)
}

func TestTokenCmd_SetShowClear(t *testing.T) {
	keyring.MockInit()

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"token", "--account", "u-1"}, args...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	assert.Contains(t, run("show"), "no token stored for u-1")
	assert.Contains(t, run("set", "abcd1234efgh5678"), "token stored for u-1")
	assert.Equal(t, "abcd********5678\n", run("show"))
	assert.Equal(t, "abcd1234efgh5678\n", run("show", "--reveal"))
	assert.Contains(t, run("clear"), "token cleared")
	assert.Contains(t, run("show"), "no token stored")
}
