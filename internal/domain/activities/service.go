package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("activity not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Type       ActivityType
	OccurredAt time.Time
	EndedAt    *time.Time
	Title      string
	Notes      string
	Quantity   *float64
	Unit       Unit
	Source     Source
}

func (s *Service) Create(ctx context.Context, childID string, actor Actor, in CreateInput) (Activity, error) {
	if strings.TrimSpace(childID) == "" {
		return Activity{}, ErrInvalidInput
	}
	if !in.Type.Valid() || in.OccurredAt.IsZero() {
		return Activity{}, ErrInvalidInput
	}
	if actor.Type == "" || strings.TrimSpace(actor.ID) == "" {
		return Activity{}, ErrInvalidInput
	}
	if in.EndedAt != nil && in.EndedAt.Before(in.OccurredAt) {
		return Activity{}, ErrInvalidInput
	}
	// cantidad y unidad van juntas
	if (in.Quantity == nil) != (in.Unit == "") {
		return Activity{}, ErrInvalidInput
	}
	if in.Quantity != nil && (*in.Quantity < 0 || !in.Unit.Valid()) {
		return Activity{}, ErrInvalidInput
	}

	src := in.Source
	if src == "" {
		src = SourceManual
	}

	a := Activity{
		ID:         uuid.NewString(),
		ChildID:    childID,
		Type:       in.Type,
		OccurredAt: in.OccurredAt,
		EndedAt:    in.EndedAt,
		RecordedAt: s.now(),
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		Actor:      actor,
		Source:     src,
		Status:     StatusActive,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Activity{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByChild(ctx context.Context, childID string, filter ListFilter) ([]Activity, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	return s.repo.ListByChild(ctx, childID, filter)
}

// Void marca la actividad como voided (no se borra).
func (s *Service) Void(ctx context.Context, id string) (Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Activity{}, ErrInvalidInput
	}
	if err := s.repo.Void(ctx, id); err != nil {
		return Activity{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Summary devuelve el resumen del día (fecha calendario UTC) sobre las actividades activas.
func (s *Service) Summary(ctx context.Context, childID string, day time.Time) (DailySummary, error) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Nanosecond)

	items, err := s.repo.ListByChild(ctx, childID, ListFilter{From: &from, To: &to, Limit: MaxLimit})
	if err != nil {
		return DailySummary{}, err
	}
	return Summarize(items, from), nil
}
