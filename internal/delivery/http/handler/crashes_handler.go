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

// crashPointCap mirrors the repository-side limit so the handler can flag
// truncated responses to the client.
const crashPointCap = 5000

// CrashesHandler serves individual crash points for map display.
type CrashesHandler struct {
	crashesUC *usecase.CrashesUseCase
	logger    *zap.Logger
}

func NewCrashesHandler(crashesUC *usecase.CrashesUseCase, logger *zap.Logger) *CrashesHandler {
	return &CrashesHandler{
		crashesUC: crashesUC,
		logger:    logger,
	}
}

// GetCrashes handles POST /api/v1/crashes. Polygon is optional; with
// clustered=true the response groups co-located points into map markers.
func (h *CrashesHandler) GetCrashes(c *fiber.Ctx) error {
	var req dto.CrashesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidPayload)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if req.Clustered {
		result, err := h.crashesUC.GetClusters(c.Context(), req)
		if err != nil {
			h.logger.Error("Failed to fetch crash clusters", zap.Error(err))
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, result, &utils.Meta{
			Total: len(result.Clusters),
		})
	}

	result, err := h.crashesUC.GetCrashes(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to fetch crashes", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     len(result.Results),
		Truncated: len(result.Results) == crashPointCap,
	})
}
