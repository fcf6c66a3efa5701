package activities

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, childrenSvc *children.Service, grantsSvc *caregivers.Service) {
	r.Route("/children/{childID}/activities", func(ar chi.Router) {
		ar.Post("/", createActivityHandler(svc, childrenSvc, grantsSvc))
		ar.Get("/", listActivitiesHandler(svc, childrenSvc, grantsSvc))
		ar.Get("/summary", summaryHandler(svc, childrenSvc, grantsSvc))

		// owner o cuidador con activities:void
		ar.Post("/{activityID}/void", voidActivityHandler(svc, childrenSvc, grantsSvc))
	})
}

// createActivityRequest es el cuerpo para registrar una actividad de cuidado.
type createActivityRequest struct {
	Type       ActivityType `json:"type" enums:"SLEEP,FEEDING,DIAPER,GROWTH,PLAYTIME,HEALTH,NOTE"`
	OccurredAt string       `json:"occurred_at"`        // RFC3339
	EndedAt    string       `json:"ended_at,omitempty"` // RFC3339 opcional
	Title      string       `json:"title"`
	Notes      string       `json:"notes"`
	Quantity   *float64     `json:"quantity,omitempty"`
	Unit       Unit         `json:"unit,omitempty" enums:"ml,g,cm,kg,min"`
}

// activityResponse es una actividad devuelta por la API.
type activityResponse struct {
	ID         string       `json:"id"`
	ChildID    string       `json:"child_id"`
	Type       ActivityType `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	EndedAt    *time.Time   `json:"ended_at,omitempty"`
	RecordedAt time.Time    `json:"recorded_at"`
	Title      string       `json:"title"`
	Notes      string       `json:"notes"`
	Quantity   *float64     `json:"quantity,omitempty"`
	Unit       Unit         `json:"unit,omitempty"`
	ActorType  ActorType    `json:"actor_type"`
	ActorID    string       `json:"actor_id"`
	Source     Source       `json:"source"`
	Status     Status       `json:"status"`
}

type summaryResponse struct {
	Date         string               `json:"date"`
	Counts       map[ActivityType]int `json:"counts"`
	SleepMinutes int                  `json:"sleep_minutes"`
	FeedingML    float64              `json:"feeding_ml"`
	LastGrowth   *activityResponse    `json:"last_growth,omitempty"`
}

// createActivityHandler godoc
// @Summary Registrar actividad
// @Description El dueño siempre puede registrar. Un cuidador necesita grant activo con scope `activities:create`.
// @Tags activities
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param childID path string true "ID del niño"
// @Param payload body createActivityRequest true "occurred_at/ended_at en RFC3339"
// @Success 201 {object} activityResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "child not found"
// @Router /children/{childID}/activities [post]
func createActivityHandler(svc *Service, childrenSvc *children.Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		childID := chi.URLParam(r, "childID")
		c, err := childrenSvc.GetByID(r.Context(), childID)
		if err != nil {
			http.Error(w, "child not found", http.StatusNotFound)
			return
		}
		if !grantsSvc.CanAccess(r.Context(), childID, c.OwnerUserID, claims.UserID, caregivers.ScopeActivitiesCreate) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		actorType := ActorTypeOwnerUser
		if c.OwnerUserID != claims.UserID {
			actorType = ActorTypeCaregiverUser
		}

		var req createActivityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		occurred, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
			return
		}
		var ended *time.Time
		if strings.TrimSpace(req.EndedAt) != "" {
			t, err := time.Parse(time.RFC3339, req.EndedAt)
			if err != nil {
				http.Error(w, "ended_at must be RFC3339", http.StatusBadRequest)
				return
			}
			ended = &t
		}

		a, err := svc.Create(r.Context(), childID, Actor{Type: actorType, ID: claims.UserID}, CreateInput{
			Type:       req.Type,
			OccurredAt: occurred,
			EndedAt:    ended,
			Title:      req.Title,
			Notes:      req.Notes,
			Quantity:   req.Quantity,
			Unit:       req.Unit,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toActivityResponse(a))
	}
}

// listActivitiesHandler godoc
// @Summary Listar actividades de un niño
// @Description Orden occurred_at desc. Un cuidador necesita scope `activities:read`.
// @Tags activities
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param childID path string true "ID del niño"
// @Param limit query int false "1-200, por defecto 50"
// @Param types query string false "CSV de tipos (ej: SLEEP,FEEDING)"
// @Param from query string false "occurred_at mínimo (RFC3339)"
// @Param to query string false "occurred_at máximo (RFC3339)"
// @Param q query string false "Texto libre en título/notas"
// @Success 200 {array} activityResponse
// @Failure 400 {string} string "filtros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "child not found"
// @Router /children/{childID}/activities [get]
func listActivitiesHandler(svc *Service, childrenSvc *children.Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, childrenSvc, grantsSvc, caregivers.ScopeActivitiesRead)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByChild(r.Context(), childID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]activityResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toActivityResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Resumen diario
// @Tags activities
// @Produce json
// @Param childID path string true "ID del niño"
// @Param date query string false "YYYY-MM-DD (default hoy UTC)"
// @Success 200 {object} summaryResponse
// @Router /children/{childID}/activities/summary [get]
func summaryHandler(svc *Service, childrenSvc *children.Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, childrenSvc, grantsSvc, caregivers.ScopeActivitiesRead)
		if !ok {
			return
		}

		day := svc.now().UTC()
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = t
		}

		sum, err := svc.Summary(r.Context(), childID, day)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := summaryResponse{
			Date:         sum.Date.Format("2006-01-02"),
			Counts:       sum.Counts,
			SleepMinutes: sum.SleepMinutes,
			FeedingML:    sum.FeedingML,
		}
		if sum.LastGrowth != nil {
			g := toActivityResponse(*sum.LastGrowth)
			resp.LastGrowth = &g
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// voidActivityHandler godoc
// @Summary Anular (void) una actividad
// @Tags activities
// @Produce json
// @Param childID path string true "ID del niño"
// @Param activityID path string true "ID de la actividad"
// @Success 200 {object} activityResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "activity not found"
// @Router /children/{childID}/activities/{activityID}/void [post]
func voidActivityHandler(svc *Service, childrenSvc *children.Service, grantsSvc *caregivers.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// permisos primero, para no filtrar si la actividad existe
		childID, ok := authorize(w, r, childrenSvc, grantsSvc, caregivers.ScopeActivitiesVoid)
		if !ok {
			return
		}

		activityID := chi.URLParam(r, "activityID")
		a, err := svc.GetByID(r.Context(), activityID)
		if err != nil || a.ChildID != childID {
			http.Error(w, "activity not found", http.StatusNotFound)
			return
		}

		updated, err := svc.Void(r.Context(), activityID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "activity not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toActivityResponse(updated))
	}
}

// authorize: owner siempre; cuidador con grant activo + scope.
func authorize(w http.ResponseWriter, r *http.Request, childrenSvc *children.Service, grantsSvc *caregivers.Service, scope caregivers.Scope) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	childID := chi.URLParam(r, "childID")
	c, err := childrenSvc.GetByID(r.Context(), childID)
	if err != nil {
		http.Error(w, "child not found", http.StatusNotFound)
		return "", false
	}
	if !grantsSvc.CanAccess(r.Context(), childID, c.OwnerUserID, claims.UserID, scope) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}
	return childID, true
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxLimit {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		out := make([]ActivityType, 0)
		for _, p := range strings.Split(v, ",") {
			t := ActivityType(strings.ToUpper(strings.TrimSpace(p)))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown activity type: " + string(t))
			}
			out = append(out, t)
		}
		if len(out) > 0 {
			filter.Types = out
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(r.URL.Query().Get("q"))
	return filter, nil
}

func toActivityResponse(a Activity) activityResponse {
	return activityResponse{
		ID:         a.ID,
		ChildID:    a.ChildID,
		Type:       a.Type,
		OccurredAt: a.OccurredAt,
		EndedAt:    a.EndedAt,
		RecordedAt: a.RecordedAt,
		Title:      a.Title,
		Notes:      a.Notes,
		Quantity:   a.Quantity,
		Unit:       a.Unit,
		ActorType:  a.Actor.Type,
		ActorID:    a.Actor.ID,
		Source:     a.Source,
		Status:     a.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
