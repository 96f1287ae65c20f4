package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pharmalink/cv/api/http/presenter"
	"github.com/pharmalink/cv/pkg/cv"
	"github.com/pharmalink/cv/pkg/cv/export"
)

type ExportHandler struct {
	useCase cv.UseCase
	printer export.Printer
	clock   cv.Clock
}

func NewExportHandler(useCase cv.UseCase, printer export.Printer, clock cv.Clock) *ExportHandler {
	if clock == nil {
		clock = cv.SystemClock()
	}
	return &ExportHandler{useCase: useCase, printer: printer, clock: clock}
}

// renderHTML builds the export document. On failure it writes the error
// response itself and reports ok=false.
func (h *ExportHandler) renderHTML(c *fiber.Ctx) (doc string, ok bool, respErr error) {
	uid, authed := currentUserID(c)
	if !authed {
		return "", false, presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false, presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	mode := cv.ModeAnonymous
	if c.Query("anonymous", "true") == "false" {
		mode = cv.ModeFull
	}
	view, err := h.useCase.Preview(c.Context(), uid, id, mode)
	if err != nil {
		if err == cv.ErrNotFound {
			return "", false, presenter.Error(c, http.StatusNotFound, "cv not found")
		}
		return "", false, presenter.Error(c, http.StatusInternalServerError, "failed to build export view")
	}
	doc, err = export.Generate(view, export.Options{
		ContactEmail: c.Query("email"),
		ContactPhone: c.Query("phone"),
		GeneratedAt:  h.clock.Now(),
	})
	if err != nil {
		return "", false, presenter.Error(c, http.StatusInternalServerError, "failed to render document")
	}
	return doc, true, nil
}

// HTML exports a CV as a standalone HTML document.
// @Summary Export CV as HTML
// @Description Renders the anonymous projection by default; pass anonymous=false for the full document.
// @Tags    export
// @Produce html
// @Param   id path string true "CV ID (UUID)"
// @Param   anonymous query bool false "render the anonymous projection (default true)"
// @Param   email query string false "contact email to print on the full document"
// @Param   phone query string false "contact phone to print on the full document"
// @Security BearerAuth
// @Success 200 {string} string "HTML document"
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/export [get]
func (h *ExportHandler) HTML(c *fiber.Ctx) error {
	doc, ok, respErr := h.renderHTML(c)
	if !ok {
		return respErr
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(doc)
}

// PDF exports a CV as a PDF via the print service.
// @Summary Export CV as PDF
// @Tags    export
// @Produce application/pdf
// @Param   id path string true "CV ID (UUID)"
// @Param   anonymous query bool false "render the anonymous projection (default true)"
// @Param   email query string false "contact email to print on the full document"
// @Param   phone query string false "contact phone to print on the full document"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /cvs/{id}/export/pdf [post]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	doc, ok, respErr := h.renderHTML(c)
	if !ok {
		return respErr
	}
	pdf, err := h.printer.RenderHTMLToPDF(c.Context(), doc)
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, "print service unavailable")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cv.pdf"`)
	return c.Send(pdf)
}
