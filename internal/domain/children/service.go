package children

import (
	"context"
	"errors"
	"strings"
	"time"

	"child-care-tracker/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("child not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrBackendNotConfigured = errors.New("care backend not configured")
)

const dateLayout = "2006-01-02"

type Service struct {
	repo    Repository
	backend BackendSource
	cache   Cache
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		log:  logger.NewNop(),
		now:  time.Now,
	}
}

// WithSync habilita SyncFromBackend. cache puede ser nil.
func (s *Service) WithSync(backend BackendSource, cache Cache, log logger.Logger) *Service {
	s.backend = backend
	s.cache = cache
	if log != nil {
		s.log = log
	}
	return s
}

type CreateInput struct {
	Name      string
	Age       string
	Sex       string
	BirthDate *time.Time
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Child, error) {
	c, err := s.newChild(ownerUserID, in)
	if err != nil {
		return Child{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Child{}, err
	}
	return c, nil
}

func (s *Service) newChild(ownerUserID string, in CreateInput) (Child, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.Name) == "" {
		return Child{}, ErrInvalidInput
	}
	sex, ok := normalizeSex(strings.TrimSpace(in.Sex))
	if !ok {
		return Child{}, ErrInvalidInput
	}

	now := s.now()
	return Child{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Age:         strings.TrimSpace(in.Age),
		Sex:         sex,
		BirthDate:   dateOnly(in.BirthDate),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Child, error) {
	if strings.TrimSpace(id) == "" {
		return Child{}, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Child{}, ErrNotFound
		}
		return Child{}, err
	}
	return c, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Child, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// BirthDatePatch distingue "no enviado" de "null" (limpiar).
type BirthDatePatch struct {
	Present bool
	Value   *time.Time
}

// UpdateProfileInput: nil = no tocar.
type UpdateProfileInput struct {
	Name      *string
	Age       *string
	Sex       *string
	BirthDate BirthDatePatch
	Notes     *string
}

func (s *Service) UpdateProfile(ctx context.Context, childID string, in UpdateProfileInput) (Child, error) {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		return Child{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Child{}, ErrInvalidInput
		}
		c.Name = name
	}
	if in.Age != nil {
		c.Age = strings.TrimSpace(*in.Age)
	}
	if in.Sex != nil {
		sex, ok := normalizeSex(strings.TrimSpace(*in.Sex))
		if !ok {
			return Child{}, ErrInvalidInput
		}
		c.Sex = sex
	}
	if in.BirthDate.Present {
		c.BirthDate = dateOnly(in.BirthDate.Value)
	}
	if in.Notes != nil {
		c.Notes = strings.TrimSpace(*in.Notes)
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Child{}, err
	}
	return c, nil
}

// dateOnly normaliza a medianoche UTC de la fecha calendario.
func dateOnly(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	y, m, d := t.Date()
	out := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &out
}

// ParseDate acepta YYYY-MM-DD.
func ParseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}
