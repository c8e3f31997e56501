package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/parking-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// openWorkbook открывает xlsx файл; отсутствие файла и ошибки разбора
// оборачиваются в domain.ErrDatasetInvalid
func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file not found: %s", domain.ErrDatasetInvalid, path)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrDatasetInvalid, path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDatasetInvalid, path, err)
	}
	return f, nil
}

// readRows читает лист; raw=true отдает значения без числового форматирования
func readRows(f *excelize.File, sheet string, raw bool) ([][]string, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: raw})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrDatasetInvalid, sheet, err)
	}
	return rows, nil
}

// cell возвращает значение ячейки; строки в xlsx могут быть короче заголовка
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// headerIndex - позиция каждой колонки заголовка
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}
