package schools

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/platform/httpx"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Handler wires school endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gates   auth.Gates
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gates auth.Gates) *Handler {
	return &Handler{logger: logger, service: service, gates: gates}
}

// MountRoutes registers school routes. Reads of a single school pass the
// school-admin gate; everything else is superadmin only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gates.SuperAdmin)
		r.Post("/", h.createSchool)
		r.Get("/", h.listSchools)
		r.Patch("/{id}", h.updateSchool)
		r.Delete("/{id}", h.deleteSchool)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.gates.SchoolAdmin)
		r.Get("/{id}", h.getSchool)
	})
}

func (h *Handler) createSchool(w http.ResponseWriter, r *http.Request) {
	var in CreateSchoolInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	school, err := h.service.CreateSchool(r.Context(), shared.PrincipalFromContext(r.Context()), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"school": school})
}

func (h *Handler) getSchool(w http.ResponseWriter, r *http.Request) {
	school, err := h.service.GetSchool(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"school": school})
}

func (h *Handler) listSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.service.ListSchools(r.Context(), shared.PrincipalFromContext(r.Context()))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"schools": schools})
}

func (h *Handler) updateSchool(w http.ResponseWriter, r *http.Request) {
	var in UpdateSchoolInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	school, err := h.service.UpdateSchool(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"school": school})
}

func (h *Handler) deleteSchool(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSchool(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "school deleted successfully"})
}
