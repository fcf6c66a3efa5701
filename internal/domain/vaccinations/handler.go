package vaccinations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/middleware"
	"child-care-tracker/internal/platform/i18n"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, grantsSvc *caregivers.Service, tr *i18n.Translator) {
	r.Route("/children/{childID}/vaccinations", func(vr chi.Router) {
		vr.Get("/", getScheduleHandler(svc, grantsSvc, tr))
		vr.Get("/export", exportScheduleHandler(svc, grantsSvc, tr))

		vr.Post("/{entryID}/complete", markCompletedHandler(svc, grantsSvc, tr))
		vr.Delete("/{entryID}/complete", unmarkHandler(svc, grantsSvc, tr))
	})
}

type markCompletedRequest struct {
	Notes       string `json:"notes"`
	CompletedAt string `json:"completed_at,omitempty"` // YYYY-MM-DD o RFC3339, opcional
}

// getScheduleHandler godoc
// @Summary Calendario de vacunas del niño
// @Description Genera el calendario desde la fecha de nacimiento (o la edad estimada), aplica las dosis registradas y devuelve estados, progreso y fechas relevantes. Etiquetas según `Accept-Language` (en, es). Un cuidador necesita scope `vaccinations:read`.
// @Tags vaccinations
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param Accept-Language header string false "en | es"
// @Param childID path string true "ID del niño"
// @Success 200 {object} ScheduleResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "child not found"
// @Router /children/{childID}/vaccinations [get]
func getScheduleHandler(svc *Service, grantsSvc *caregivers.Service, tr *i18n.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, svc, grantsSvc, caregivers.ScopeVaccinationsRead)
		if !ok {
			return
		}

		sched, err := svc.Schedule(r.Context(), childID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		lang := tr.Match(r.Header.Get("Accept-Language"))
		writeJSON(w, http.StatusOK, NewScheduleResponse(sched, tr, lang))
	}
}

// markCompletedHandler godoc
// @Summary Registrar dosis aplicada
// @Description Marca la dosis como aplicada (si ya estaba, se sobrescribe). Devuelve el calendario recalculado. Un cuidador necesita scope `vaccinations:complete`.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Param childID path string true "ID del niño"
// @Param entryID path string true "ID de la dosis (ej: dtap-1)"
// @Param payload body markCompletedRequest false "Notas y fecha opcional"
// @Success 200 {object} ScheduleResponse
// @Failure 400 {string} string "invalid json / completed_at inválido"
// @Failure 404 {string} string "unknown vaccination entry"
// @Router /children/{childID}/vaccinations/{entryID}/complete [post]
func markCompletedHandler(svc *Service, grantsSvc *caregivers.Service, tr *i18n.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, svc, grantsSvc, caregivers.ScopeVaccinationsComplete)
		if !ok {
			return
		}

		var req markCompletedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var at *time.Time
		if v := strings.TrimSpace(req.CompletedAt); v != "" {
			t, err := parseCompletedAt(v)
			if err != nil {
				http.Error(w, "completed_at must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
				return
			}
			at = &t
		}

		sched, err := svc.MarkCompleted(r.Context(), childID, chi.URLParam(r, "entryID"), req.Notes, at)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		lang := tr.Match(r.Header.Get("Accept-Language"))
		writeJSON(w, http.StatusOK, NewScheduleResponse(sched, tr, lang))
	}
}

// unmarkHandler godoc
// @Summary Deshacer dosis aplicada
// @Tags vaccinations
// @Produce json
// @Param childID path string true "ID del niño"
// @Param entryID path string true "ID de la dosis"
// @Success 200 {object} ScheduleResponse
// @Router /children/{childID}/vaccinations/{entryID}/complete [delete]
func unmarkHandler(svc *Service, grantsSvc *caregivers.Service, tr *i18n.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, svc, grantsSvc, caregivers.ScopeVaccinationsComplete)
		if !ok {
			return
		}

		sched, err := svc.Unmark(r.Context(), childID, chi.URLParam(r, "entryID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		lang := tr.Match(r.Header.Get("Accept-Language"))
		writeJSON(w, http.StatusOK, NewScheduleResponse(sched, tr, lang))
	}
}

// exportScheduleHandler godoc
// @Summary Exportar calendario de vacunas
// @Description `format=ics` (default) para calendarios; `format=xlsx` para planilla.
// @Tags vaccinations
// @Produce text/calendar
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param childID path string true "ID del niño"
// @Param format query string false "ics | xlsx"
// @Success 200 {file} file
// @Failure 400 {string} string "unsupported export format"
// @Router /children/{childID}/vaccinations/export [get]
func exportScheduleHandler(svc *Service, grantsSvc *caregivers.Service, tr *i18n.Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID, ok := authorize(w, r, svc, grantsSvc, caregivers.ScopeVaccinationsRead)
		if !ok {
			return
		}

		format, err := ParseExportFormat(r.URL.Query().Get("format"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sched, err := svc.Schedule(r.Context(), childID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		// buffer: un error a mitad de encode no debe dejar un 200 truncado
		var buf bytes.Buffer
		lang := tr.Match(r.Header.Get("Accept-Language"))
		if err := Export(&buf, format, sched, tr, lang, svc.now()); err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="vaccinations-%s.%s"`, childID, format))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// authorize: owner siempre; cuidador con grant activo + scope.
func authorize(w http.ResponseWriter, r *http.Request, svc *Service, grantsSvc *caregivers.Service, scope caregivers.Scope) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	childID := chi.URLParam(r, "childID")
	c, err := svc.children.GetByID(r.Context(), childID)
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

func parseCompletedAt(v string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnknownEntry):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, children.ErrNotFound):
		http.Error(w, "child not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
