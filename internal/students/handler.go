package students

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/platform/httpx"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Handler wires student endpoints behind the school-admin gate.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gates   auth.Gates
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gates auth.Gates) *Handler {
	return &Handler{logger: logger, service: service, gates: gates}
}

// MountRoutes registers student routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gates.SchoolAdmin)
		r.Post("/", h.createStudent)
		r.Get("/", h.listStudents)
		r.Get("/{id}", h.getStudent)
		r.Patch("/{id}", h.updateStudent)
		r.Delete("/{id}", h.deleteStudent)
		r.Post("/{id}/transfer", h.transferStudent)
	})
}

func (h *Handler) createStudent(w http.ResponseWriter, r *http.Request) {
	var in CreateStudentInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	student, err := h.service.CreateStudent(r.Context(), shared.PrincipalFromContext(r.Context()), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"student": student})
}

func (h *Handler) getStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.GetStudent(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"student": student})
}

func (h *Handler) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents(r.Context(), shared.PrincipalFromContext(r.Context()), r.URL.Query().Get("schoolId"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"students": students})
}

func (h *Handler) updateStudent(w http.ResponseWriter, r *http.Request) {
	var in UpdateStudentInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	student, err := h.service.UpdateStudent(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"student": student})
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStudent(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "student deleted successfully"})
}

func (h *Handler) transferStudent(w http.ResponseWriter, r *http.Request) {
	var in TransferStudentInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, shared.Errorf(shared.ErrValidation, "invalid request body"))
		return
	}
	student, err := h.service.TransferStudent(r.Context(), shared.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"student": student})
}
