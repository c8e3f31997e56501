package handler

import (
	"html/template"
	"net/url"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/utils"
	"github.com/parking-dashboard/internal/pkg/validator"
	"github.com/parking-dashboard/internal/usecase"
	"github.com/parking-dashboard/internal/usecase/dto"
	"go.uber.org/zap"
)

// DashboardPage - данные для шаблона дашборда
type DashboardPage struct {
	Title     string
	Filter    dto.FilterRequest
	Options   *dto.OptionsResponse
	Result    *dto.FilterResponse
	MapCenter MapCenterCoords
	MapZoom   int
	ChartURL  string
	Legend    []LegendItem
	Wildcard  string
}

// MapCenterCoords - координаты центра карты
type MapCenterCoords struct {
	Lat float64
	Lon float64
}

// LegendItem - цвет маркера для категории загруженности
type LegendItem struct {
	Label string
	Color string
}

// DashboardHandler - хендлер для рендеринга HTML дашборда
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	templates   *template.Template
	logger      *zap.Logger
}

// NewDashboardHandler - создание нового хендлера дашборда.
// Шаблоны загружаются из <templatesDir>/dashboard/*.html
func NewDashboardHandler(dashboardUC *usecase.DashboardUseCase, templatesDir string, logger *zap.Logger) (*DashboardHandler, error) {
	tmpl, err := template.ParseGlob(filepath.Join(templatesDir, "dashboard", "*.html"))
	if err != nil {
		return nil, err
	}

	return &DashboardHandler{
		dashboardUC: dashboardUC,
		templates:   tmpl,
		logger:      logger,
	}, nil
}

func legend() []LegendItem {
	items := make([]LegendItem, 0, len(domain.CongestionLabels))
	for _, l := range domain.CongestionLabels {
		items = append(items, LegendItem{Label: string(l), Color: l.Color()})
	}
	return items
}

// chartURL - адрес PNG графика выбранной парковки
func chartURL(lotID string, weekday domain.Weekday) string {
	return "/api/v1/lots/" + url.PathEscape(lotID) + "/congestion/" + url.PathEscape(string(weekday)) + "/chart.png"
}

// RenderDashboard - рендеринг страницы дашборда: боковая панель, карта, график и таблица
func (h *DashboardHandler) RenderDashboard(c *fiber.Ctx) error {
	var req dto.FilterRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	options, err := h.dashboardUC.Options(c.Context(), req.District)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.dashboardUC.Filter(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	data := DashboardPage{
		Title:     "대구시 공영주차장 태양광 적합성 및 혼잡도 대시보드",
		Filter:    result.Filter,
		Options:   options,
		Result:    result,
		MapCenter: MapCenterCoords{Lat: domain.MapCenter.Lat, Lon: domain.MapCenter.Lon},
		MapZoom:   domain.MapCenter.Zoom,
		Legend:    legend(),
		Wildcard:  domain.Wildcard,
	}
	if result.Selected != nil && result.Series != nil {
		data.ChartURL = chartURL(result.Selected.ID, result.Weekday)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := h.templates.ExecuteTemplate(c.Response().BodyWriter(), "base.html", data); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
		return err
	}
	return nil
}
