package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pharmalink/cv/api/http/presenter"
	"github.com/pharmalink/cv/pkg/cv"
)

type PreviewHandler struct {
	useCase cv.UseCase
}

func NewPreviewHandler(useCase cv.UseCase) *PreviewHandler {
	return &PreviewHandler{useCase: useCase}
}

// Preview renders a CV projection.
// @Summary Preview CV
// @Description Returns the anonymous or full projection of a CV. Anonymous is the default.
// @Tags    cvs
// @Produce json
// @Param   id path string true "CV ID (UUID)"
// @Param   mode query string false "projection mode" Enums(anonymous, full)
// @Security BearerAuth
// @Success 200 {object} cv.CVView
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/preview [get]
func (h *PreviewHandler) Preview(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	mode := cv.ModeAnonymous
	switch c.Query("mode") {
	case "", string(cv.ModeAnonymous):
	case string(cv.ModeFull):
		mode = cv.ModeFull
	default:
		return presenter.Error(c, http.StatusBadRequest, "mode must be anonymous or full")
	}
	view, err := h.useCase.Preview(c.Context(), uid, id, mode)
	if err != nil {
		if err == cv.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "cv not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to build preview")
	}
	return presenter.JSON(c, http.StatusOK, view)
}

// Completeness reports how filled-in a CV is.
// @Summary CV completeness
// @Tags    cvs
// @Produce json
// @Param   id path string true "CV ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.Completeness
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/completeness [get]
func (h *PreviewHandler) Completeness(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	score, err := h.useCase.Completeness(c.Context(), uid, id)
	if err != nil {
		if err == cv.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "cv not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to compute completeness")
	}
	return presenter.JSON(c, http.StatusOK, score)
}
