package vaccinations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/platform/logger"
)

var ErrInvalidInput = errors.New("invalid input")

// ChildSchedule es el calendario de un niño con sus completions y la vista derivada.
type ChildSchedule struct {
	Child              children.Child
	BirthDate          time.Time
	BirthDateEstimated bool

	Entries     []Entry
	Completions map[string]CompletionRecord
	View        View
}

type Service struct {
	children ChildLookup
	repo     CompletionRepository
	log      logger.Logger
	now      func() time.Time
}

func NewService(childLookup ChildLookup, repo CompletionRepository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		children: childLookup,
		repo:     repo,
		log:      log,
		now:      time.Now,
	}
}

// ResolveBirthDate: fecha explícita si existe; si no, estimada desde la edad en texto.
func ResolveBirthDate(c children.Child, now time.Time) (time.Time, bool) {
	if c.BirthDate != nil && !c.BirthDate.IsZero() {
		return *c.BirthDate, false
	}
	return EstimateBirthDate(c.Age, now), true
}

// BuildSchedule arma el calendario sin tocar storage (lo usan el Service y el CLI).
func BuildSchedule(c children.Child, completions []CompletionRecord, now time.Time, log logger.Logger) (ChildSchedule, *Tracker) {
	birth, estimated := ResolveBirthDate(c, now)

	tr := NewTracker(c.ID, log)
	tr.Load(birth, completions, now)

	return ChildSchedule{
		Child:              c,
		BirthDate:          birth,
		BirthDateEstimated: estimated,
		Entries:            tr.Entries,
		Completions:        tr.Completions,
		View:               tr.View(now),
	}, tr
}

func (s *Service) Schedule(ctx context.Context, childID string) (ChildSchedule, error) {
	sched, _, err := s.load(ctx, childID, s.now())
	return sched, err
}

// MarkCompleted registra la dosis; completedAt nil => ahora.
func (s *Service) MarkCompleted(ctx context.Context, childID, entryID, notes string, completedAt *time.Time) (ChildSchedule, error) {
	now := s.now()
	sched, tr, err := s.load(ctx, childID, now)
	if err != nil {
		return ChildSchedule{}, err
	}

	completed := now
	if completedAt != nil && !completedAt.IsZero() {
		if completedAt.After(now) {
			return ChildSchedule{}, ErrInvalidInput
		}
		completed = *completedAt
	}

	rec, err := tr.MarkCompletedOn(entryID, notes, completed, now)
	if err != nil {
		return ChildSchedule{}, err
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return ChildSchedule{}, fmt.Errorf("save completion: %w", err)
	}

	s.log.Info("vaccination completed", map[string]any{
		"child_id": childID,
		"entry_id": rec.EntryID,
	})
	return refresh(sched, tr, now), nil
}

// Unmark deshace una completion (acción explícita del usuario).
func (s *Service) Unmark(ctx context.Context, childID, entryID string) (ChildSchedule, error) {
	now := s.now()
	sched, tr, err := s.load(ctx, childID, now)
	if err != nil {
		return ChildSchedule{}, err
	}

	entryID = strings.TrimSpace(entryID)
	if err := tr.Unmark(entryID, now); err != nil {
		return ChildSchedule{}, err
	}
	if err := s.repo.Delete(ctx, childID, entryID); err != nil {
		return ChildSchedule{}, fmt.Errorf("delete completion: %w", err)
	}

	s.log.Info("vaccination unmarked", map[string]any{
		"child_id": childID,
		"entry_id": entryID,
	})
	return refresh(sched, tr, now), nil
}

func (s *Service) load(ctx context.Context, childID string, now time.Time) (ChildSchedule, *Tracker, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return ChildSchedule{}, nil, ErrInvalidInput
	}

	c, err := s.children.GetByID(ctx, childID)
	if err != nil {
		return ChildSchedule{}, nil, err
	}

	recs, err := s.repo.ListByChild(ctx, childID)
	if err != nil {
		return ChildSchedule{}, nil, fmt.Errorf("load completions: %w", err)
	}

	sched, tr := BuildSchedule(c, recs, now, s.log)
	return sched, tr, nil
}

func refresh(sched ChildSchedule, tr *Tracker, now time.Time) ChildSchedule {
	sched.Completions = tr.Completions
	sched.View = tr.View(now)
	return sched
}
