package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pharmalink/cv/api/http/presenter"
	"github.com/pharmalink/cv/pkg/cv"
)

type CVHandler struct {
	useCase  cv.UseCase
	maxBytes int64
}

func NewCVHandler(useCase cv.UseCase) *CVHandler {
	return &CVHandler{
		useCase:  useCase,
		maxBytes: 15 << 20, // 15MB
	}
}

type cvRequest struct {
	Variant string          `json:"variant"`
	Title   string          `json:"title"`
	Content cv.StructuredCV `json:"content"`
}

// Create creates a new CV for the authenticated user.
// @Summary Create CV
// @Tags    cvs
// @Accept  json
// @Produce json
// @Param   input body cvRequest true "cv payload"
// @Security BearerAuth
// @Success 201 {object} cv.Record
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs [post]
func (h *CVHandler) Create(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req cvRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	rec, err := h.useCase.Create(c.Context(), uid, cv.Variant(req.Variant), req.Title, req.Content)
	if err != nil {
		var verr cv.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, string(verr))
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create cv")
	}
	return presenter.JSON(c, http.StatusCreated, rec)
}

// List returns the authenticated user's CVs.
// @Summary List CVs
// @Tags    cvs
// @Produce json
// @Param   limit query int false "page size (max 200)"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} cv.Record
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs [get]
func (h *CVHandler) List(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.List(c.Context(), uid, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list cvs")
	}
	if items == nil {
		items = []cv.Record{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get returns a single CV owned by the authenticated user.
// @Summary Get CV
// @Tags    cvs
// @Produce json
// @Param   id path string true "CV ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} cv.Record
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [get]
func (h *CVHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	rec, err := h.useCase.Get(c.Context(), uid, id)
	if err != nil {
		if err == cv.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "cv not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load cv")
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// Update replaces a CV's title and content.
// @Summary Update CV
// @Tags    cvs
// @Accept  json
// @Produce json
// @Param   id path string true "CV ID (UUID)"
// @Param   input body cvRequest true "cv payload"
// @Security BearerAuth
// @Success 200 {object} cv.Record
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [put]
func (h *CVHandler) Update(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req cvRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	rec, err := h.useCase.Update(c.Context(), uid, id, req.Title, req.Content)
	if err != nil {
		var verr cv.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, string(verr))
		case err == cv.ErrNotFound:
			return presenter.Error(c, http.StatusNotFound, "cv not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update cv")
		}
	}
	return presenter.JSON(c, http.StatusOK, rec)
}

// Delete removes a CV.
// @Summary Delete CV
// @Tags    cvs
// @Param   id path string true "CV ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id} [delete]
func (h *CVHandler) Delete(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.useCase.Delete(c.Context(), uid, id); err != nil {
		if err == cv.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "cv not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete cv")
	}
	return c.SendStatus(http.StatusNoContent)
}

// Prefill extracts text from an uploaded document and returns a scrubbed draft.
// @Summary Prefill CV draft from a document
// @Description Accepts PDF/DOCX, extracts the text and returns a draft with a scrubbed summary.
// @Tags    cvs
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Source document (PDF/DOCX)"
// @Security BearerAuth
// @Success 200 {object} cv.StructuredCV
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /cvs/prefill [post]
func (h *CVHandler) Prefill(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	draft, err := cv.PrefillDraft(fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse document: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, draft)
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file")
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file too large (limit %d bytes)", max)
	}
	return data, nil
}
