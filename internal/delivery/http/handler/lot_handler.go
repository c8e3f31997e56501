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

// LotHandler - обработчик фильтрации парковок
type LotHandler struct {
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewLotHandler - создание нового LotHandler
func NewLotHandler(dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *LotHandler {
	return &LotHandler{
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// GetOptions godoc
// @Summary Значения селекторов боковой панели
// @Description Возвращает районы, названия парковок (с учетом района), метки пригодности, загруженности и дни недели. Первым элементом каждого списка идет "전체".
// @Tags Lots
// @Produce json
// @Param district query string false "Район (подстрока адреса)" default(전체)
// @Success 200 {object} utils.SuccessResponse{data=dto.OptionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/options [get]
func (h *LotHandler) GetOptions(c *fiber.Ctx) error {
	req := dto.FilterRequest{District: c.Query("district", "")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dashboardUC.Options(c.Context(), req.District)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// ListLots godoc
// @Summary Фильтрация парковок
// @Description Применяет фильтры по району, названию, пригодности для солнечных панелей и загруженности. Если выбрана ровно одна парковка, в ответ добавляется ряд загруженности за выбранный день.
// @Tags Lots
// @Produce json
// @Param district query string false "Район" default(전체)
// @Param lot query string false "Название парковки" default(전체)
// @Param lot_id query string false "ID парковки (однозначный выбор)"
// @Param solar query string false "Пригодность" Enums(전체, 적합, 부적합)
// @Param congestion query string false "Загруженность" Enums(전체, 여유, 보통, 혼잡)
// @Param weekday query string false "День недели" Enums(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday) default(Monday)
// @Success 200 {object} utils.SuccessResponse{data=dto.FilterResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/lots [get]
func (h *LotHandler) ListLots(c *fiber.Ctx) error {
	var req dto.FilterRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dashboardUC.Filter(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	meta := &utils.Meta{Total: result.Total}
	for _, m := range result.Messages {
		meta.Messages = append(meta.Messages, m.Text)
	}

	return utils.SendSuccess(c, result, meta)
}
