package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/crashstats-service/internal/pkg/errors"
	"github.com/crashstats-service/internal/pkg/utils"
	"github.com/crashstats-service/internal/pkg/validator"
	"github.com/crashstats-service/internal/usecase"
	"github.com/crashstats-service/internal/usecase/dto"
)

// SummaryHandler serves aggregate crash statistics for a drawn polygon.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
	logger    *zap.Logger
}

func NewSummaryHandler(summaryUC *usecase.SummaryUseCase, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		summaryUC: summaryUC,
		logger:    logger,
	}
}

// GetSummary handles POST /api/v1/summary. Body: {polygon, filters?} where
// polygon is a GeoJSON Feature or bare Polygon/MultiPolygon and filters may
// carry dateFrom/dateTo/severity.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	var req dto.SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidPayload)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidPayload)
	}

	result, err := h.summaryUC.GetSummary(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
