package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-stock-dashboard/internal/entity"
	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
)

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// RegisterRoutes registers the profile routes to the Echo group.
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)
}

// GetProfile returns the stored profile, or the defaults when none exists.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), "")
	if err != nil {
		h.logger.Error("Profile read failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// SaveProfile overwrites the stored profile wholesale.
func (h *ProfileHandler) SaveProfile(c echo.Context) error {
	var profile entity.UserProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	saved, err := h.profileService.Save(c.Request().Context(), profile)
	if err != nil {
		h.logger.Error("Profile save failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save profile"})
	}
	return c.JSON(http.StatusOK, saved)
}
