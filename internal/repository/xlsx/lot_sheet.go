package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parking-dashboard/internal/domain"
	"github.com/parking-dashboard/internal/pkg/utils"
)

// parseLots разбирает лист парковок: первая строка - заголовок
func parseLots(rows [][]string) ([]*domain.Lot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: lot sheet is empty", domain.ErrDatasetInvalid)
	}

	idx := headerIndex(rows[0])
	var missing []string
	for _, col := range domain.RequiredLotColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: lot sheet is missing columns: %s",
			domain.ErrDatasetInvalid, strings.Join(missing, ", "))
	}

	lots := make([]*domain.Lot, 0, len(rows)-1)
	seen := make(map[string]int, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}

		lot, err := parseLotRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrDatasetInvalid, line, err)
		}
		if prev, dup := seen[lot.ID]; dup {
			return nil, fmt.Errorf("%w: row %d: duplicate %s %q (first seen in row %d)",
				domain.ErrDatasetInvalid, line, domain.ColumnLotID, lot.ID, prev)
		}
		seen[lot.ID] = line
		lots = append(lots, lot)
	}

	return lots, nil
}

func parseLotRow(row []string, idx map[string]int) (*domain.Lot, error) {
	id := normalizeID(cell(row, idx[domain.ColumnLotID]))
	if id == "" {
		return nil, fmt.Errorf("empty %s", domain.ColumnLotID)
	}
	// ID входит в путь /api/v1/lots/:id/...
	if strings.Contains(id, "/") {
		return nil, fmt.Errorf("%s %q contains '/'", domain.ColumnLotID, id)
	}

	lat, err := strconv.ParseFloat(cell(row, idx[domain.ColumnLatitude]), 64)
	if err != nil {
		return nil, fmt.Errorf("lot %s: invalid %s: %v", id, domain.ColumnLatitude, err)
	}
	lon, err := strconv.ParseFloat(cell(row, idx[domain.ColumnLongitude]), 64)
	if err != nil {
		return nil, fmt.Errorf("lot %s: invalid %s: %v", id, domain.ColumnLongitude, err)
	}
	if !utils.ValidateCoordinates(lat, lon) {
		return nil, fmt.Errorf("lot %s: coordinates out of range: %f, %f", id, lat, lon)
	}

	solar := domain.SolarLabel(cell(row, idx[domain.ColumnSolar]))
	if !solar.Valid() {
		return nil, fmt.Errorf("lot %s: unknown %s %q", id, domain.ColumnSolar, solar)
	}
	congestion := domain.CongestionLabel(cell(row, idx[domain.ColumnCongestion]))
	if !congestion.Valid() {
		return nil, fmt.Errorf("lot %s: unknown %s %q", id, domain.ColumnCongestion, congestion)
	}

	return &domain.Lot{
		ID:         id,
		Name:       cell(row, idx[domain.ColumnLotName]),
		Address:    cell(row, idx[domain.ColumnAddress]),
		Lat:        lat,
		Lon:        lon,
		Solar:      solar,
		Congestion: congestion,
	}, nil
}

// normalizeID приводит числовые ID вида "1001.0" к "1001", чтобы они совпадали
// с заголовками листов загруженности
func normalizeID(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ".0") {
		if _, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64); err == nil {
			return strings.TrimSuffix(s, ".0")
		}
	}
	return s
}
