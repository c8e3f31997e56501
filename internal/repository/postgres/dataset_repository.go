package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/domain/repository"
	"go.uber.org/zap"
)

// DatasetRepository - снимок набора данных в PostgreSQL: источник для DATA_SOURCE=postgres и приемник для импортера
type DatasetRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDatasetRepository создает репозиторий снимка набора данных в PostgreSQL
func NewDatasetRepository(db *DB, logger *zap.Logger) *DatasetRepository {
	return &DatasetRepository{
		db:     db,
		logger: logger,
	}
}

var (
	_ repository.DatasetRepository  = (*DatasetRepository)(nil)
	_ repository.SnapshotRepository = (*DatasetRepository)(nil)
)

// LoadLots возвращает парковки в порядке исходного файла
func (r *DatasetRepository) LoadLots(ctx context.Context) ([]*domain.Lot, error) {
	const query = `
		SELECT id, name, address, lat, lon, solar, congestion
		FROM parking_lots
		ORDER BY position`

	var lots []*domain.Lot
	if err := r.db.SelectContext(ctx, &lots, query); err != nil {
		r.logger.Error("Failed to load lots from snapshot", zap.Error(err))
		return nil, fmt.Errorf("%w: load lots: %v", domain.ErrDatasetInvalid, err)
	}
	if len(lots) == 0 {
		return nil, fmt.Errorf("%w: snapshot has no lots", domain.ErrDatasetInvalid)
	}

	return lots, nil
}

type timeRow struct {
	Weekday   string `db:"weekday"`
	TimeLabel string `db:"time_label"`
}

type cellRow struct {
	Weekday   string   `db:"weekday"`
	LotID     string   `db:"lot_id"`
	Occupancy *float64 `db:"occupancy"`
}

// LoadCongestion собирает таблицы дней недели из снимка
func (r *DatasetRepository) LoadCongestion(ctx context.Context) (domain.CongestionBook, error) {
	var times []timeRow
	if err := r.db.SelectContext(ctx, &times, `
		SELECT weekday, time_label
		FROM congestion_times
		ORDER BY weekday, position`); err != nil {
		return nil, fmt.Errorf("%w: load congestion times: %v", domain.ErrDatasetInvalid, err)
	}

	axis := make(map[domain.Weekday][]string)
	for _, row := range times {
		day, ok := domain.ParseWeekday(row.Weekday)
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q in snapshot", domain.ErrDatasetInvalid, row.Weekday)
		}
		axis[day] = append(axis[day], row.TimeLabel)
	}

	var cells []cellRow
	if err := r.db.SelectContext(ctx, &cells, `
		SELECT weekday, lot_id, occupancy
		FROM congestion_cells
		ORDER BY weekday, column_position, time_position`); err != nil {
		return nil, fmt.Errorf("%w: load congestion cells: %v", domain.ErrDatasetInvalid, err)
	}

	book := make(domain.CongestionBook, len(axis))
	for day, labels := range axis {
		book[day] = domain.NewCongestionTable(day, labels)
	}

	// ячейки отсортированы по (weekday, column_position, time_position),
	// поэтому колонка собирается непрерывным отрезком
	var (
		curDay   domain.Weekday
		curLot   string
		curVals  []*float64
		flushErr error
	)
	flush := func() {
		if curLot == "" || flushErr != nil {
			return
		}
		table, ok := book[curDay]
		if !ok {
			flushErr = fmt.Errorf("%w: cells for %s without time axis", domain.ErrDatasetInvalid, curDay)
			return
		}
		flushErr = table.SetColumn(curLot, curVals)
	}

	for _, c := range cells {
		day := domain.Weekday(c.Weekday)
		if day != curDay || c.LotID != curLot {
			flush()
			curDay, curLot, curVals = day, c.LotID, nil
		}
		curVals = append(curVals, c.Occupancy)
	}
	flush()
	if flushErr != nil {
		return nil, flushErr
	}

	if len(book) == 0 {
		return nil, fmt.Errorf("%w: snapshot has no congestion tables", domain.ErrDatasetInvalid)
	}

	return book, nil
}

// ReplaceSnapshot удаляет предыдущий снимок и записывает новый в одной транзакции.
// Массивы передаются через pq.Array и разворачиваются unnest'ом.
func (r *DatasetRepository) ReplaceSnapshot(ctx context.Context, lots []*domain.Lot, book domain.CongestionBook) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"congestion_cells", "congestion_times", "parking_lots"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	var (
		positions              []int64
		ids, names, addresses  []string
		lats, lons             []float64
		solars, congestionTags []string
	)
	for i, lot := range lots {
		positions = append(positions, int64(i))
		ids = append(ids, lot.ID)
		names = append(names, lot.Name)
		addresses = append(addresses, lot.Address)
		lats = append(lats, lot.Lat)
		lons = append(lons, lot.Lon)
		solars = append(solars, string(lot.Solar))
		congestionTags = append(congestionTags, string(lot.Congestion))
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO parking_lots (position, id, name, address, lat, lon, solar, congestion)
		SELECT * FROM unnest($1::int[], $2::text[], $3::text[], $4::text[], $5::float8[], $6::float8[], $7::text[], $8::text[])`,
		pq.Array(positions), pq.Array(ids), pq.Array(names), pq.Array(addresses),
		pq.Array(lats), pq.Array(lons), pq.Array(solars), pq.Array(congestionTags),
	); err != nil {
		return fmt.Errorf("insert lots: %w", err)
	}

	cellCount := 0
	for _, day := range domain.Weekdays {
		table, ok := book[day]
		if !ok {
			continue
		}

		timePositions := make([]int64, len(table.Times))
		for i := range table.Times {
			timePositions[i] = int64(i)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO congestion_times (weekday, position, time_label)
			SELECT $1, * FROM unnest($2::int[], $3::text[])`,
			string(day), pq.Array(timePositions), pq.Array(table.Times),
		); err != nil {
			return fmt.Errorf("insert %s times: %w", day, err)
		}

		var (
			lotIDs       []string
			colPositions []int64
			rowPositions []int64
			values       []float64
			present      []bool
		)
		for c, lotID := range table.LotIDs() {
			for row := range table.Times {
				v, ok := table.Value(lotID, row)
				lotIDs = append(lotIDs, lotID)
				colPositions = append(colPositions, int64(c))
				rowPositions = append(rowPositions, int64(row))
				values = append(values, v)
				present = append(present, ok)
			}
		}
		if len(lotIDs) == 0 {
			continue
		}

		if _, err = tx.ExecContext(ctx, `
			INSERT INTO congestion_cells (weekday, lot_id, column_position, time_position, occupancy)
			SELECT $1, u.lot_id, u.col, u.row, CASE WHEN u.present THEN u.value END
			FROM unnest($2::text[], $3::int[], $4::int[], $5::float8[], $6::bool[])
				AS u(lot_id, col, row, value, present)`,
			string(day), pq.Array(lotIDs), pq.Array(colPositions), pq.Array(rowPositions),
			pq.Array(values), pq.Array(present),
		); err != nil {
			return fmt.Errorf("insert %s cells: %w", day, err)
		}
		cellCount += len(lotIDs)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	r.logger.Info("Snapshot replaced",
		zap.Int("lots", len(lots)),
		zap.Int("weekdays", len(book)),
		zap.Int("cells", cellCount))

	return nil
}
