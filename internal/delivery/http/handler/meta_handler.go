package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/crashstats-service/internal/pkg/utils"
	"github.com/crashstats-service/internal/usecase"
)

// MetaHandler reports dataset provenance and freshness.
type MetaHandler struct {
	metaUC *usecase.MetaUseCase
	logger *zap.Logger
}

func NewMetaHandler(metaUC *usecase.MetaUseCase, logger *zap.Logger) *MetaHandler {
	return &MetaHandler{
		metaUC: metaUC,
		logger: logger,
	}
}

// GetMeta handles GET /api/v1/meta.
func (h *MetaHandler) GetMeta(c *fiber.Ctx) error {
	meta, err := h.metaUC.GetMeta(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, meta, &utils.Meta{
		DataVersion: meta.DataVersion,
	})
}
