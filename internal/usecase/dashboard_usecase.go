package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"github.com/parking-dashboard/internal/pkg/errors"
	"github.com/parking-dashboard/internal/pkg/metrics"
	"github.com/parking-dashboard/internal/usecase/dto"
)

// Тексты сообщений дашборда
const (
	msgEmptyResult   = "선택한 조건에 해당하는 데이터가 없습니다."
	msgSelectOne     = "지도에서 확인할 주차장을 사이드바에서 하나만 선택하시면, 해당 주차장의 상세 혼잡도 정보를 볼 수 있습니다."
	msgSeriesMissing = "선택된 주차장 (ID: %s)의 혼잡도 상세 데이터가 '%s' 시트 또는 데이터셋에 없습니다."
	msgAmbiguousName = "같은 이름의 주차장이 %d곳 있어 첫 번째 주차장(ID: %s)을 표시합니다. 다른 주차장은 ID로 선택하세요."
)

// DatasetReader - загруженные при старте данные только для чтения
type DatasetReader interface {
	Loaded() bool
	Lots() []*domain.Lot
	Congestion() domain.CongestionBook
	LoadedAt() time.Time
}

// ChartRenderer рисует ряд загруженности
type ChartRenderer interface {
	Render(series domain.Series) ([]byte, error)
}

// DashboardUseCase - фильтрация парковок и выбор ряда загруженности
type DashboardUseCase struct {
	store     DatasetReader
	cacheRepo repository.CacheRepository
	renderer  ChartRenderer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewDashboardUseCase - создание нового DashboardUseCase
func NewDashboardUseCase(
	store DatasetReader,
	cacheRepo repository.CacheRepository,
	renderer ChartRenderer,
	m *metrics.Metrics,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *DashboardUseCase {
	return &DashboardUseCase{
		store:     store,
		cacheRepo: cacheRepo,
		renderer:  renderer,
		metrics:   m,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Options - значения селекторов; список парковок строится по району
func (uc *DashboardUseCase) Options(ctx context.Context, district string) (*dto.OptionsResponse, error) {
	if !uc.store.Loaded() {
		return nil, errors.ErrDatasetUnavailable
	}

	byDistrict := domain.ApplyFilters(uc.store.Lots(), domain.FilterState{District: district})

	resp := &dto.OptionsResponse{
		Districts:  append([]string{domain.Wildcard}, domain.Districts...),
		Lots:       append([]string{domain.Wildcard}, domain.LotNames(byDistrict)...),
		Solar:      []string{domain.Wildcard},
		Congestion: []string{domain.Wildcard},
		Weekdays:   make([]string, 0, len(domain.Weekdays)),
	}
	for _, s := range domain.SolarLabels {
		resp.Solar = append(resp.Solar, string(s))
	}
	for _, c := range domain.CongestionLabels {
		resp.Congestion = append(resp.Congestion, string(c))
	}
	for _, d := range domain.Weekdays {
		resp.Weekdays = append(resp.Weekdays, string(d))
	}

	return resp, nil
}

// Filter применяет фильтры и, если выбрана ровно одна парковка, подтягивает ее ряд
func (uc *DashboardUseCase) Filter(ctx context.Context, req dto.FilterRequest) (*dto.FilterResponse, error) {
	if !uc.store.Loaded() {
		return nil, errors.ErrDatasetUnavailable
	}

	if req.Weekday == "" {
		req.Weekday = string(domain.Monday)
	}
	weekday, ok := domain.ParseWeekday(req.Weekday)
	if !ok {
		return nil, errors.ErrInvalidWeekday.WithDetails(map[string]interface{}{"weekday": req.Weekday})
	}

	state := req.State()
	filtered := domain.ApplyFilters(uc.store.Lots(), state)

	uc.metrics.FilterRequests.Inc()
	uc.metrics.FilterResultSize.Observe(float64(len(filtered)))

	resp := &dto.FilterResponse{
		Filter:  req,
		Lots:    make([]dto.LotDTO, 0, len(filtered)),
		Total:   len(filtered),
		Weekday: weekday,
	}
	for _, lot := range filtered {
		resp.Lots = append(resp.Lots, dto.NewLotDTO(lot))
	}

	if len(filtered) == 0 {
		resp.Messages = append(resp.Messages, dto.Message{Level: dto.MessageWarning, Text: msgEmptyResult})
	}

	selected, selection := domain.SelectLot(filtered, state)
	resp.Selection = selection
	if selected == nil {
		resp.Messages = append(resp.Messages, dto.Message{Level: dto.MessageInfo, Text: msgSelectOne})
		return resp, nil
	}

	lotDTO := dto.NewLotDTO(selected)
	resp.Selected = &lotDTO
	if selected.ID == state.LotID {
		// Выбор по ID сужает карту и таблицу до одной парковки
		resp.Lots = []dto.LotDTO{lotDTO}
		resp.Total = 1
	}
	if selection.Ambiguous {
		uc.logger.Debug("Lot name is not unique, using first match",
			zap.String("name", selected.Name),
			zap.String("lot_id", selected.ID),
			zap.Int("candidates", selection.Candidates))
		resp.Messages = append(resp.Messages, dto.Message{
			Level: dto.MessageInfo,
			Text:  fmt.Sprintf(msgAmbiguousName, selection.Candidates, selected.ID),
		})
	}

	series, err := uc.lookup(ctx, weekday, selected.ID)
	switch {
	case err == nil:
		resp.Series = series
	case stderrors.Is(err, domain.ErrSeriesNotFound):
		resp.Messages = append(resp.Messages, dto.Message{
			Level: dto.MessageInfo,
			Text:  fmt.Sprintf(msgSeriesMissing, selected.ID, weekday),
		})
	default:
		return nil, err
	}

	return resp, nil
}

// Series возвращает ряд загруженности парковки за день недели в процентах
func (uc *DashboardUseCase) Series(ctx context.Context, req dto.SeriesRequest) (*domain.Series, error) {
	weekday, err := uc.resolve(req)
	if err != nil {
		return nil, err
	}

	series, err := uc.lookup(ctx, weekday, req.LotID)
	if stderrors.Is(err, domain.ErrSeriesNotFound) {
		return nil, errors.ErrSeriesNotFound.WithDetails(map[string]interface{}{
			"lot_id":  req.LotID,
			"weekday": string(weekday),
		})
	}
	return series, err
}

// Chart возвращает PNG графика ряда загруженности
func (uc *DashboardUseCase) Chart(ctx context.Context, req dto.SeriesRequest) ([]byte, error) {
	weekday, err := uc.resolve(req)
	if err != nil {
		return nil, err
	}

	if !uc.store.Congestion().HasColumn(weekday, req.LotID) {
		uc.metrics.SeriesLookups.WithLabelValues("not_found").Inc()
		return nil, errors.ErrSeriesNotFound.WithDetails(map[string]interface{}{
			"lot_id":  req.LotID,
			"weekday": string(weekday),
		})
	}

	cached, err := uc.cacheRepo.GetChart(ctx, weekday, req.LotID)
	if err != nil {
		uc.logger.Warn("Failed to get chart from cache", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.CacheLookups.WithLabelValues("chart", "hit").Inc()
		return cached, nil
	}
	uc.metrics.CacheLookups.WithLabelValues("chart", "miss").Inc()

	series, err := uc.Series(ctx, req)
	if err != nil {
		return nil, err
	}

	png, err := uc.renderer.Render(*series)
	if err != nil {
		uc.logger.Error("Failed to render congestion chart",
			zap.String("lot_id", req.LotID),
			zap.String("weekday", string(weekday)),
			zap.Error(err))
		return nil, errors.ErrChartRender
	}

	if err := uc.cacheRepo.SetChart(ctx, weekday, req.LotID, png, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache chart", zap.Error(err))
	}

	return png, nil
}

// resolve проверяет день недели и существование парковки
func (uc *DashboardUseCase) resolve(req dto.SeriesRequest) (domain.Weekday, error) {
	if !uc.store.Loaded() {
		return "", errors.ErrDatasetUnavailable
	}

	weekday, ok := domain.ParseWeekday(req.Weekday)
	if !ok {
		return "", errors.ErrInvalidWeekday.WithDetails(map[string]interface{}{"weekday": req.Weekday})
	}

	for _, lot := range uc.store.Lots() {
		if lot.ID == req.LotID {
			return weekday, nil
		}
	}
	return "", errors.ErrLotNotFound.WithDetails(map[string]interface{}{"lot_id": req.LotID})
}

// lookup - ряд из кеша или из загруженных таблиц; ошибки кеша не прерывают запрос.
// Кеш читается только для колонок, которые есть в загруженной таблице.
func (uc *DashboardUseCase) lookup(ctx context.Context, weekday domain.Weekday, lotID string) (*domain.Series, error) {
	if !uc.store.Congestion().HasColumn(weekday, lotID) {
		uc.metrics.SeriesLookups.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: no column %q in %s", domain.ErrSeriesNotFound, lotID, weekday)
	}

	cached, err := uc.cacheRepo.GetSeries(ctx, weekday, lotID)
	if err != nil {
		uc.logger.Warn("Failed to get series from cache", zap.Error(err))
	}
	if cached != nil {
		uc.metrics.CacheLookups.WithLabelValues("series", "hit").Inc()
		uc.metrics.SeriesLookups.WithLabelValues("found").Inc()
		return cached, nil
	}
	uc.metrics.CacheLookups.WithLabelValues("series", "miss").Inc()

	series, err := domain.LookupSeries(uc.store.Congestion(), string(weekday), lotID)
	if err != nil {
		uc.metrics.SeriesLookups.WithLabelValues("not_found").Inc()
		uc.logger.Debug("Congestion series not found",
			zap.String("lot_id", lotID),
			zap.String("weekday", string(weekday)),
			zap.Error(err))
		return nil, err
	}
	uc.metrics.SeriesLookups.WithLabelValues("found").Inc()

	if err := uc.cacheRepo.SetSeries(ctx, &series, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache series", zap.Error(err))
	}

	return &series, nil
}
