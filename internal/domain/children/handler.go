package children

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// careTokenHeader permite pasar el token del backend en modo dev (sin Bearer verificado).
const careTokenHeader = "X-Care-Token"

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *caregivers.Service) {
	r.Route("/children", func(cr chi.Router) {
		cr.Post("/", createChildHandler(svc))
		cr.Get("/", listChildrenHandler(svc))
		cr.Post("/sync", syncChildrenHandler(svc))

		// owner o cuidador con child:read
		cr.Get("/{childID}", getChildHandler(svc, grantsSvc))
		// owner o cuidador con child:edit_profile
		cr.Patch("/{childID}", updateChildHandler(svc, grantsSvc))
	})

	r.Get("/me/children", listMySharedChildrenHandler(svc, grantsSvc))
}

type createChildRequest struct {
	Name      string `json:"name"`
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Notes     string `json:"notes"`
}

type updateChildRequest struct {
	Name  *string `json:"name"`
	Age   *string `json:"age"`
	Sex   *string `json:"sex"`
	Notes *string `json:"notes"`
}

type childResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Age         string    `json:"age,omitempty"`
	Sex         Sex       `json:"sex"`
	BirthDate   *string   `json:"birth_date,omitempty"`
	Notes       string    `json:"notes"`
	ExternalID  string    `json:"external_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type sharedChildResponse struct {
	Child  childResponse      `json:"child"`
	Grant  sharedGrantSummary `json:"grant"`
	Scopes []caregivers.Scope `json:"scopes"`
}

type sharedGrantSummary struct {
	ID     string            `json:"id"`
	Status caregivers.Status `json:"status"`
}

type syncResponse struct {
	Children []childResponse `json:"children"`
	Stale    bool            `json:"stale"`
}

func createChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createChildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := ParseDate(req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		c, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Age:       req.Age,
			Sex:       req.Sex,
			BirthDate: bd,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toChildResponse(c))
	}
}

func listChildrenHandler(svc *Service) http.HandlerFunc {
	// Solo los propios; los compartidos van por /me/children
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toChildResponses(items))
	}
}

func getChildHandler(svc *Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		childID := chi.URLParam(r, "childID")
		c, err := svc.GetByID(r.Context(), childID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if !grantsSvc.CanAccess(r.Context(), childID, c.OwnerUserID, claims.UserID, caregivers.ScopeChildRead) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toChildResponse(c))
	}
}

func updateChildHandler(svc *Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		childID := chi.URLParam(r, "childID")
		current, err := svc.GetByID(r.Context(), childID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !grantsSvc.CanAccess(r.Context(), childID, current.OwnerUserID, claims.UserID, caregivers.ScopeChildEditProfile) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Map primero para detectar "birth_date": null (limpiar) vs ausente.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateChildRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd BirthDatePatch
		if v, exists := raw["birth_date"]; exists {
			bd.Present = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := ParseDate(s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), childID, UpdateProfileInput{
			Name:      req.Name,
			Age:       req.Age,
			Sex:       req.Sex,
			BirthDate: bd,
			Notes:     req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toChildResponse(updated))
	}
}

func syncChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := middleware.GetToken(r.Context())
		if token == "" {
			token = strings.TrimSpace(r.Header.Get(careTokenHeader))
		}

		res, err := svc.SyncFromBackend(r.Context(), claims.UserID, token)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, syncResponse{
			Children: toChildResponses(res.Children),
			Stale:    res.Stale,
		})
	}
}

func listMySharedChildrenHandler(svc *Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	// Niños compartidos conmigo (grant activo con child:read)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grants, err := grantsSvc.ListByGrantee(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		seen := map[string]struct{}{}
		out := make([]sharedChildResponse, 0)

		for _, g := range grants {
			if g.Status != caregivers.StatusActive || !caregivers.HasScope(g, caregivers.ScopeChildRead) {
				continue
			}
			if _, ok := seen[g.ChildID]; ok {
				continue
			}
			seen[g.ChildID] = struct{}{}

			c, err := svc.GetByID(r.Context(), g.ChildID)
			if err != nil {
				// grant huérfano
				continue
			}

			out = append(out, sharedChildResponse{
				Child:  toChildResponse(c),
				Grant:  sharedGrantSummary{ID: g.ID, Status: g.Status},
				Scopes: g.Scopes,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "child not found", http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrBackendNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toChildResponse(c Child) childResponse {
	var bd *string
	if c.BirthDate != nil {
		s := c.BirthDate.Format(dateLayout)
		bd = &s
	}
	return childResponse{
		ID:          c.ID,
		OwnerUserID: c.OwnerUserID,
		Name:        c.Name,
		Age:         c.Age,
		Sex:         c.Sex,
		BirthDate:   bd,
		Notes:       c.Notes,
		ExternalID:  c.ExternalID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toChildResponses(items []Child) []childResponse {
	out := make([]childResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toChildResponse(c))
	}
	return out
}

// writeJSON duplicado por módulo (children/caregivers/activities/vaccinations).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
