package children

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SyncFromBackend trae los niños del backend remoto y los refleja localmente (upsert por ExternalID).
// Si el backend falla se usa la última lista cacheada y el resultado queda Stale.
func (s *Service) SyncFromBackend(ctx context.Context, ownerUserID, token string) (SyncResult, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" || strings.TrimSpace(token) == "" {
		return SyncResult{}, ErrUnauthorized
	}
	if s.backend == nil {
		return SyncResult{}, ErrBackendNotConfigured
	}

	log := s.log.With(map[string]any{"owner_user_id": ownerUserID})

	remote, err := s.backend.ListChildren(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return SyncResult{}, err
		}

		cached, ok := s.cachedList(ctx, ownerUserID)
		if !ok {
			return SyncResult{}, fmt.Errorf("sync children: %w", err)
		}
		log.Warn("care backend unavailable, using cached children", map[string]any{
			"error":  err,
			"cached": len(cached),
		})

		items, err := s.upsertRemote(ctx, ownerUserID, cached)
		if err != nil {
			return SyncResult{}, err
		}
		return SyncResult{Children: items, Stale: true}, nil
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, ownerUserID, remote); err != nil {
			log.Warn("children cache write failed", map[string]any{"error": err})
		}
	}

	items, err := s.upsertRemote(ctx, ownerUserID, remote)
	if err != nil {
		return SyncResult{}, err
	}
	log.Info("children synced", map[string]any{"count": len(items)})
	return SyncResult{Children: items}, nil
}

func (s *Service) cachedList(ctx context.Context, ownerUserID string) ([]RemoteChild, bool) {
	if s.cache == nil {
		return nil, false
	}
	items, ok, err := s.cache.Get(ctx, ownerUserID)
	if err != nil {
		s.log.Warn("children cache read failed", map[string]any{"error": err})
		return nil, false
	}
	return items, ok
}

func (s *Service) upsertRemote(ctx context.Context, ownerUserID string, remote []RemoteChild) ([]Child, error) {
	out := make([]Child, 0, len(remote))
	for _, rc := range remote {
		extID := strings.TrimSpace(rc.ExternalID)
		if extID == "" || strings.TrimSpace(rc.Name) == "" {
			continue
		}
		sex, ok := normalizeSex(strings.TrimSpace(rc.Sex))
		if !ok {
			sex = SexUnknown
		}

		now := s.now()
		existing, err := s.repo.GetByExternalID(ctx, ownerUserID, extID)
		switch {
		case err == nil:
			existing.Name = strings.TrimSpace(rc.Name)
			existing.Age = strings.TrimSpace(rc.Age)
			existing.Sex = sex
			existing.BirthDate = dateOnly(rc.BirthDate)
			if n := strings.TrimSpace(rc.Notes); n != "" {
				existing.Notes = n
			}
			existing.UpdatedAt = now
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("update child %s: %w", extID, err)
			}
			out = append(out, existing)

		case errors.Is(err, ErrNotFound):
			c, err := s.newChild(ownerUserID, CreateInput{
				Name:      rc.Name,
				Age:       rc.Age,
				Sex:       string(sex),
				BirthDate: rc.BirthDate,
				Notes:     rc.Notes,
			})
			if err != nil {
				return nil, fmt.Errorf("create child %s: %w", extID, err)
			}
			c.ExternalID = extID
			if err := s.repo.Create(ctx, c); err != nil {
				return nil, fmt.Errorf("create child %s: %w", extID, err)
			}
			out = append(out, c)

		default:
			return nil, err
		}
	}
	return out, nil
}
