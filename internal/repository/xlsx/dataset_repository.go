package xlsx

import (
	"context"
	"fmt"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"go.uber.org/zap"
)

type datasetRepository struct {
	mainPath       string
	congestionPath string
	logger         *zap.Logger
}

// NewDatasetRepository создает источник данных поверх двух xlsx файлов
func NewDatasetRepository(mainPath, congestionPath string, logger *zap.Logger) repository.DatasetRepository {
	return &datasetRepository{
		mainPath:       mainPath,
		congestionPath: congestionPath,
		logger:         logger,
	}
}

// LoadLots читает первый лист основного файла
func (r *datasetRepository) LoadLots(ctx context.Context) ([]*domain.Lot, error) {
	f, err := openWorkbook(r.mainPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", domain.ErrDatasetInvalid, r.mainPath)
	}

	rows, err := readRows(f, sheets[0], true)
	if err != nil {
		return nil, err
	}

	lots, err := parseLots(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.mainPath, err)
	}

	r.logger.Info("Lot records loaded",
		zap.String("path", r.mainPath),
		zap.String("sheet", sheets[0]),
		zap.Int("lots", len(lots)))

	return lots, nil
}

// LoadCongestion читает листы Monday..Sunday; остальные листы игнорируются
func (r *datasetRepository) LoadCongestion(ctx context.Context) (domain.CongestionBook, error) {
	f, err := openWorkbook(r.congestionPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := make(domain.CongestionBook, len(domain.Weekdays))
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day, ok := domain.ParseWeekday(sheet)
		if !ok {
			r.logger.Debug("Skipping non-weekday sheet", zap.String("sheet", sheet))
			continue
		}

		formatted, err := readRows(f, sheet, false)
		if err != nil {
			return nil, err
		}
		raw, err := readRows(f, sheet, true)
		if err != nil {
			return nil, err
		}

		table, err := parseCongestionSheet(day, formatted, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.congestionPath, err)
		}
		book[day] = table

		r.logger.Debug("Congestion sheet loaded",
			zap.String("weekday", string(day)),
			zap.Int("times", len(table.Times)),
			zap.Int("lots", len(table.LotIDs())))
	}

	if len(book) == 0 {
		return nil, fmt.Errorf("%w: %s has no weekday sheets", domain.ErrDatasetInvalid, r.congestionPath)
	}

	missing := make([]string, 0)
	for _, day := range domain.Weekdays {
		if _, ok := book[day]; !ok {
			missing = append(missing, string(day))
		}
	}
	if len(missing) > 0 {
		r.logger.Warn("Congestion file has no sheets for some weekdays", zap.Strings("weekdays", missing))
	}

	r.logger.Info("Congestion tables loaded",
		zap.String("path", r.congestionPath),
		zap.Int("weekdays", len(book)))

	return book, nil
}
