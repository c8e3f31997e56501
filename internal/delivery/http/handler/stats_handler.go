package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/parking-dashboard/internal/pkg/utils"
	"github.com/parking-dashboard/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Статистика набора данных
// @Description Количество парковок по районам, пригодности и загруженности, покрытие таблицами по дням недели
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.DatasetSummary}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")

	stats, err := h.statsUC.GetStatistics(c.Context())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, &utils.Meta{Total: stats.TotalLots})
}
