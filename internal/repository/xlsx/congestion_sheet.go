package xlsx

import (
	"fmt"
	"strconv"

	"github.com/parking-dashboard/internal/domain"
)

// parseCongestionSheet строит таблицу дня недели. formatted - строки с форматированием
// (только для подписей времени в первой колонке), raw - те же строки без форматирования
// (ID парковок в заголовке и доли занятости). Заголовок: первая ячейка - имя индекса,
// далее ID парковок; они читаются так же, как колонка ID основного файла.
func parseCongestionSheet(day domain.Weekday, formatted, raw [][]string) (*domain.CongestionTable, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", domain.ErrDatasetInvalid, day)
	}

	header := raw[0]

	type column struct {
		lotID string
		pos   int
	}
	var columns []column
	for pos := 1; pos < len(header); pos++ {
		id := normalizeID(cell(header, pos))
		if id == "" {
			continue
		}
		columns = append(columns, column{lotID: id, pos: pos})
	}

	var times []string
	var dataRows [][]string
	for i := 1; i < len(raw); i++ {
		if blankRow(raw[i]) {
			continue
		}
		label := ""
		if i < len(formatted) {
			label = cell(formatted[i], 0)
		}
		if label == "" {
			label = cell(raw[i], 0)
		}
		if label == "" {
			return nil, fmt.Errorf("%w: sheet %s row %d has no time label", domain.ErrDatasetInvalid, day, i+1)
		}
		times = append(times, label)
		dataRows = append(dataRows, raw[i])
	}

	table := domain.NewCongestionTable(day, times)
	for _, col := range columns {
		values := make([]*float64, len(dataRows))
		for r, row := range dataRows {
			s := cell(row, col.pos)
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: sheet %s, lot %s, time %s: invalid value %q",
					domain.ErrDatasetInvalid, day, col.lotID, times[r], s)
			}
			values[r] = &v
		}
		if err := table.SetColumn(col.lotID, values); err != nil {
			return nil, err
		}
	}

	return table, nil
}
