package classrooms

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/platform/httpx"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Handler wires classroom endpoints behind the school-admin gate.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gates   auth.Gates
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gates auth.Gates) *Handler {
	return &Handler{logger: logger, service: service, gates: gates}
}

// MountRoutes registers classroom routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gates.SchoolAdmin)
		r.Post("/", h.createClassroom)
		r.Get("/", h.listClassrooms)
		r.Get("/{id}", h.getClassroom)
		r.Patch("/{id}", h.updateClassroom)
		r.Delete("/{id}", h.deleteClassroom)
	})
}

func (h *Handler) createClassroom(w http.ResponseWriter, r *http.Request) {
	var in CreateClassroomInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	classroom, err := h.service.CreateClassroom(r.Context(), shared.PrincipalFromContext(r.Context()), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"classroom": classroom})
}

func (h *Handler) getClassroom(w http.ResponseWriter, r *http.Request) {
	classroom, err := h.service.GetClassroom(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"classroom": classroom})
}

func (h *Handler) listClassrooms(w http.ResponseWriter, r *http.Request) {
	classrooms, err := h.service.ListClassrooms(r.Context(), shared.PrincipalFromContext(r.Context()), r.URL.Query().Get("schoolId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"classrooms": classrooms})
}

func (h *Handler) updateClassroom(w http.ResponseWriter, r *http.Request) {
	var in UpdateClassroomInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	classroom, err := h.service.UpdateClassroom(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"classroom": classroom})
}

func (h *Handler) deleteClassroom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClassroom(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "classroom deleted successfully"})
}
