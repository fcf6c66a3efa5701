package caregivers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// DefaultScopes se aplica cuando el invite no trae scopes: ver perfil, actividades y vacunas.
var DefaultScopes = []Scope{ScopeChildRead, ScopeActivitiesRead, ScopeVaccinationsRead}

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

type InviteInput struct {
	ChildID       string
	OwnerUserID   string
	GranteeUserID string
	Scopes        []Scope
}

func (s *Service) Invite(ctx context.Context, in InviteInput) (Grant, error) {
	childID := strings.TrimSpace(in.ChildID)
	ownerID := strings.TrimSpace(in.OwnerUserID)
	granteeID := strings.TrimSpace(in.GranteeUserID)

	if childID == "" || ownerID == "" || granteeID == "" {
		return Grant{}, ErrInvalidInput
	}
	if ownerID == granteeID {
		return Grant{}, ErrInvalidInput
	}

	// Scopes vacíos => default; con valores => validación estricta.
	var scopes []Scope
	var err error
	if len(in.Scopes) == 0 {
		scopes = append([]Scope(nil), DefaultScopes...)
	} else {
		scopes, err = normalizeScopesStrict(in.Scopes)
		if err != nil {
			return Grant{}, err
		}
		if len(scopes) == 0 {
			return Grant{}, ErrInvalidInput
		}
	}

	now := s.now()

	// Re-invitar al mismo cuidador actualiza el grant vigente en vez de duplicarlo.
	existing, allMatches, err := s.findLatestMatch(ctx, childID, ownerID, granteeID)
	if err == nil && existing.ID != "" && existing.Status != StatusRevoked {
		s.revokeOtherMatches(ctx, existing.ID, allMatches, now)

		existing.Scopes = scopes
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return Grant{}, err
		}
		return existing, nil
	}

	g := Grant{
		ID:            uuid.NewString(),
		ChildID:       childID,
		OwnerUserID:   ownerID,
		GranteeUserID: granteeID,
		Scopes:        scopes,
		Status:        StatusInvited,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

// Accept activa el grant y revoca cualquier otro grant vivo para (child, grantee):
// queda exactamente uno activo.
func (s *Service) Accept(ctx context.Context, grantID, granteeUserID string) (Grant, error) {
	grantID = strings.TrimSpace(grantID)
	granteeUserID = strings.TrimSpace(granteeUserID)

	if grantID == "" || granteeUserID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	if g.GranteeUserID != granteeUserID {
		return Grant{}, ErrForbidden
	}
	if g.Status == StatusRevoked {
		return Grant{}, ErrBadState
	}
	if g.Status != StatusActive && g.Status != StatusInvited {
		return Grant{}, ErrBadState
	}

	now := s.now()

	siblings, err := s.repo.ListByChild(ctx, g.ChildID)
	if err != nil {
		return Grant{}, err
	}
	matches := make([]Grant, 0, len(siblings))
	for _, o := range siblings {
		if o.GranteeUserID == granteeUserID {
			matches = append(matches, o)
		}
	}
	s.revokeOtherMatches(ctx, g.ID, matches, now)

	// Idempotente
	if g.Status == StatusActive {
		return g, nil
	}

	g.Status = StatusActive
	g.UpdatedAt = now
	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) Revoke(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	grantID = strings.TrimSpace(grantID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if grantID == "" || ownerUserID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	if g.OwnerUserID != ownerUserID {
		return Grant{}, ErrForbidden
	}

	// Idempotente
	if g.Status == StatusRevoked {
		return g, nil
	}

	now := s.now()
	g.Status = StatusRevoked
	g.UpdatedAt = now
	g.RevokedAt = &now

	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) ListByChild(ctx context.Context, childID string) ([]Grant, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByChild(ctx, childID)
}

func (s *Service) GetActiveGrant(ctx context.Context, childID, granteeUserID string) (Grant, error) {
	childID = strings.TrimSpace(childID)
	granteeUserID = strings.TrimSpace(granteeUserID)

	if childID == "" || granteeUserID == "" {
		return Grant{}, ErrInvalidInput
	}
	g, err := s.repo.GetActiveGrant(ctx, childID, granteeUserID)
	if err != nil {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

func (s *Service) ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error) {
	granteeUserID = strings.TrimSpace(granteeUserID)
	if granteeUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByGrantee(ctx, granteeUserID)
}

// CanAccess: el owner siempre puede; otro usuario necesita grant activo con scope.
func (s *Service) CanAccess(ctx context.Context, childID, ownerUserID, userID string, scope Scope) bool {
	if strings.TrimSpace(userID) == "" {
		return false
	}
	if ownerUserID == userID {
		return true
	}
	g, err := s.GetActiveGrant(ctx, childID, userID)
	if err != nil {
		return false
	}
	return HasScope(g, scope)
}

// HasScope valida si el grant incluye un scope.
func HasScope(g Grant, scope Scope) bool {
	for _, s := range g.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (s *Service) findLatestMatch(ctx context.Context, childID, ownerID, granteeID string) (Grant, []Grant, error) {
	items, err := s.repo.ListByChild(ctx, childID)
	if err != nil {
		return Grant{}, nil, err
	}

	matches := make([]Grant, 0)
	var winner Grant
	hasWinner := false

	for _, g := range items {
		if g.ChildID != childID || g.OwnerUserID != ownerID || g.GranteeUserID != granteeID {
			continue
		}
		matches = append(matches, g)

		if !hasWinner || g.UpdatedAt.After(winner.UpdatedAt) {
			winner = g
			hasWinner = true
		}
	}

	if !hasWinner {
		return Grant{}, matches, ErrNotFound
	}
	return winner, matches, nil
}

// best-effort: un fallo al revocar un duplicado no bloquea la operación principal.
func (s *Service) revokeOtherMatches(ctx context.Context, winnerID string, matches []Grant, now time.Time) {
	for _, g := range matches {
		if g.ID == "" || g.ID == winnerID || g.Status == StatusRevoked {
			continue
		}
		g.Status = StatusRevoked
		g.UpdatedAt = now
		g.RevokedAt = &now
		_ = s.repo.Update(ctx, g)
	}
}

func normalizeScopesStrict(in []Scope) ([]Scope, error) {
	allowed := make(map[Scope]struct{}, len(AllScopes))
	for _, s := range AllScopes {
		allowed[s] = struct{}{}
	}

	seen := map[Scope]struct{}{}
	out := make([]Scope, 0, len(in))

	for _, raw := range in {
		s := Scope(strings.TrimSpace(string(raw)))
		if s == "" {
			continue
		}
		if _, ok := allowed[s]; !ok {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out, nil
}

// ParseScopes convierte strings (p.ej. columnas TEXT) a scopes, ignorando vacíos.
func ParseScopes(raw []string) []Scope {
	out := make([]Scope, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, Scope(r))
		}
	}
	return out
}
