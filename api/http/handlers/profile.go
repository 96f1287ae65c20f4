package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pharmalink/cv/api/http/presenter"
	"github.com/pharmalink/cv/pkg/profile"
)

type ProfileHandler struct {
	repo profile.Repository
}

func NewProfileHandler(repo profile.Repository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Get returns the authenticated user's profile.
// @Summary Get profile
// @Tags    profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	p, err := h.repo.Get(c.Context(), uid)
	if err != nil {
		if err == profile.ErrNotFound {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type profileRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Nickname      string  `json:"nickname"`
	CurrentCity   string  `json:"currentCity"`
	CurrentRegion string  `json:"currentRegion"`
	PhotoURL      string  `json:"photoUrl"`
	Phone         string  `json:"phone"`
	Rating        float64 `json:"rating"`
}

// Put creates or replaces the authenticated user's profile.
// @Summary Upsert profile
// @Tags    profile
// @Accept  json
// @Produce json
// @Param   input body profileRequest true "profile payload"
// @Security BearerAuth
// @Success 200 {object} profile.Profile
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /profile [put]
func (h *ProfileHandler) Put(c *fiber.Ctx) error {
	uid, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p := profile.Profile{
		UserID:        uid,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Nickname:      req.Nickname,
		CurrentCity:   req.CurrentCity,
		CurrentRegion: req.CurrentRegion,
		PhotoURL:      req.PhotoURL,
		Phone:         req.Phone,
		Rating:        req.Rating,
	}
	if err := h.repo.Upsert(c.Context(), p); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save profile")
	}
	saved, err := h.repo.Get(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, saved)
}
