package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/utils"
	"github.com/parking-dashboard/internal/pkg/validator"
	"github.com/parking-dashboard/internal/usecase"
	"github.com/parking-dashboard/internal/usecase/dto"
	"go.uber.org/zap"
)

// CongestionHandler - обработчик рядов загруженности
type CongestionHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewCongestionHandler - создание нового CongestionHandler
func NewCongestionHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *CongestionHandler {
	return &CongestionHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

func (h *CongestionHandler) parseRequest(c *fiber.Ctx) (dto.SeriesRequest, error) {
	var req dto.SeriesRequest
	if err := c.ParamsParser(&req); err != nil {
		return req, errors.ErrInvalidRequest
	}
	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// GetSeries godoc
// @Summary Ряд загруженности парковки
// @Description Возвращает почасовую загруженность парковки за день недели в процентах (0-100)
// @Tags Congestion
// @Produce json
// @Param id path string true "ID парковки"
// @Param weekday path string true "День недели" Enums(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
// @Success 200 {object} utils.SuccessResponse{data=domain.Series}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lots/{id}/congestion/{weekday} [get]
func (h *CongestionHandler) GetSeries(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	series, err := h.dashboardUC.Series(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, series, &utils.Meta{Total: len(series.Points)})
}

// GetChart godoc
// @Summary График загруженности парковки
// @Description Возвращает PNG линейного графика загруженности за день недели
// @Tags Congestion
// @Produce png
// @Param id path string true "ID парковки"
// @Param weekday path string true "День недели" Enums(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lots/{id}/congestion/{weekday}/chart.png [get]
func (h *CongestionHandler) GetChart(c *fiber.Ctx) error {
	req, err := h.parseRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	png, err := h.dashboardUC.Chart(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Send(png)
}
