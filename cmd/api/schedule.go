package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/domain/vaccinations"
	"child-care-tracker/internal/platform/i18n"
	"child-care-tracker/internal/platform/logger"
)

type scheduleFlags struct {
	name      string
	age       string
	birthDate string
	today     string
	completed []string
	format    string
	lang      string
	out       string
}

func scheduleCmd() *cobra.Command {
	f := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the vaccination schedule for a birth date or an age",
		Example: `  child-care-tracker schedule --age "3 months"
  child-care-tracker schedule --birth-date 2025-01-01 --completed hepb-1,hepb-2 --format ics --out luna.ics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if f.out != "" && f.out != "-" {
				file, err := os.Create(f.out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return runSchedule(w, f, time.Now())
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "child name (used in exports)")
	cmd.Flags().StringVar(&f.age, "age", "", `age text, e.g. "3 months" or "10 days"`)
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date YYYY-MM-DD (wins over --age)")
	cmd.Flags().StringVar(&f.today, "today", "", "reference date YYYY-MM-DD (default: now)")
	cmd.Flags().StringSliceVar(&f.completed, "completed", nil, "completed entry ids, e.g. hepb-1,dtap-1")
	cmd.Flags().StringVar(&f.format, "format", "text", "text | json | ics | xlsx")
	cmd.Flags().StringVar(&f.lang, "lang", "en", "en | es")
	cmd.Flags().StringVar(&f.out, "out", "", "output file (default stdout)")

	return cmd
}

func runSchedule(w io.Writer, f *scheduleFlags, now time.Time) error {
	if strings.TrimSpace(f.today) != "" {
		t, err := children.ParseDate(f.today)
		if err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		now = t
	}

	child := children.Child{
		ID:   "cli",
		Name: strings.TrimSpace(f.name),
		Age:  strings.TrimSpace(f.age),
	}
	if strings.TrimSpace(f.birthDate) != "" {
		bd, err := children.ParseDate(f.birthDate)
		if err != nil {
			return fmt.Errorf("--birth-date: %w", err)
		}
		child.BirthDate = &bd
	}
	if child.BirthDate == nil && child.Age == "" {
		return errors.New("one of --birth-date or --age is required")
	}

	tr, err := i18n.New("en")
	if err != nil {
		return err
	}
	lang := tr.Match(f.lang)

	// Sin logs en stdout: la salida es el calendario.
	log := logger.NewNop()

	base, _ := vaccinations.BuildSchedule(child, nil, now, log)
	known := make(map[string]bool, len(base.Entries))
	for _, e := range base.Entries {
		known[e.ID] = true
	}

	completions := make([]vaccinations.CompletionRecord, 0, len(f.completed))
	for _, id := range f.completed {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !known[id] {
			return fmt.Errorf("%w: %s", vaccinations.ErrUnknownEntry, id)
		}
		completions = append(completions, vaccinations.CompletionRecord{
			ChildID:       child.ID,
			EntryID:       id,
			CompletedDate: now,
		})
	}

	sched, _ := vaccinations.BuildSchedule(child, completions, now, log)

	switch strings.ToLower(strings.TrimSpace(f.format)) {
	case "", "text":
		return writeScheduleText(w, vaccinations.NewScheduleResponse(sched, tr, lang))
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vaccinations.NewScheduleResponse(sched, tr, lang))
	default:
		format, err := vaccinations.ParseExportFormat(f.format)
		if err != nil {
			return err
		}
		return vaccinations.Export(w, format, sched, tr, lang, now)
	}
}

func writeScheduleText(w io.Writer, resp vaccinations.ScheduleResponse) error {
	estimated := ""
	if resp.BirthDateEstimated {
		estimated = " (estimated)"
	}
	if _, err := fmt.Fprintf(w, "Birth date: %s%s\n%s\n", resp.BirthDate, estimated, resp.ProgressLabel); err != nil {
		return err
	}

	for _, g := range resp.Groups {
		marker := " "
		if resp.CurrentDateKey != nil && *resp.CurrentDateKey == g.DateKey {
			marker = ">"
		} else if resp.NextDateKey != nil && *resp.NextDateKey == g.DateKey {
			marker = "+"
		}
		if _, err := fmt.Fprintf(w, "\n%s %s [%s]\n", marker, g.DateKey, g.StatusLabel); err != nil {
			return err
		}
		for _, e := range g.Entries {
			check := "[ ]"
			if e.Completed {
				check = "[x]"
			}
			if _, err := fmt.Fprintf(w, "    %s %-8s %s - %s\n", check, e.ID, e.VaccineName, e.DoseLabel); err != nil {
				return err
			}
		}
	}
	return nil
}
