package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/pkg/utils"
	"github.com/crashstats-service/internal/usecase"
)

// GeocodeHandler proxies place search to the upstream geocoder.
type GeocodeHandler struct {
	geocodeUC *usecase.GeocodeUseCase
	logger    *zap.Logger
}

func NewGeocodeHandler(geocodeUC *usecase.GeocodeUseCase, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		geocodeUC: geocodeUC,
		logger:    logger,
	}
}

// ForwardGeocode handles GET /api/v1/geocode?q=. The provider response is
// passed through verbatim.
func (h *GeocodeHandler) ForwardGeocode(c *fiber.Ctx) error {
	body, err := h.geocodeUC.ForwardGeocode(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
