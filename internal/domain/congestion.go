package domain

import "fmt"

// Weekday - имя листа в файле загруженности
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays - дни недели в порядке селектора
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday возвращает день недели по имени листа
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// CongestionTable - таблица одного дня недели: строки - время суток,
// колонки - ID парковок, значения - доля занятости в [0,1].
// Колонки разреженные: пустая ячейка хранится как отсутствующее значение.
type CongestionTable struct {
	Weekday Weekday
	Times   []string
	columns map[string][]*float64
	order   []string
}

// NewCongestionTable создает пустую таблицу с заданной временной осью
func NewCongestionTable(weekday Weekday, times []string) *CongestionTable {
	t := make([]string, len(times))
	copy(t, times)
	return &CongestionTable{
		Weekday: weekday,
		Times:   t,
		columns: make(map[string][]*float64),
	}
}

// SetColumn добавляет колонку парковки; длина должна совпадать с осью времени
func (t *CongestionTable) SetColumn(lotID string, values []*float64) error {
	if len(values) != len(t.Times) {
		return fmt.Errorf("%w: column %q in %s has %d values, want %d",
			ErrDatasetInvalid, lotID, t.Weekday, len(values), len(t.Times))
	}
	if _, exists := t.columns[lotID]; exists {
		return fmt.Errorf("%w: duplicate column %q in %s", ErrDatasetInvalid, lotID, t.Weekday)
	}
	col := make([]*float64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 1 {
			return fmt.Errorf("%w: %s/%s at %q: occupancy %v out of [0,1]",
				ErrDatasetInvalid, t.Weekday, lotID, t.Times[i], *v)
		}
		val := *v
		col[i] = &val
	}
	t.columns[lotID] = col
	t.order = append(t.order, lotID)
	return nil
}

// HasColumn сообщает, есть ли колонка для парковки
func (t *CongestionTable) HasColumn(lotID string) bool {
	_, ok := t.columns[lotID]
	return ok
}

// LotIDs - ID парковок в порядке колонок листа
func (t *CongestionTable) LotIDs() []string {
	ids := make([]string, len(t.order))
	copy(ids, t.order)
	return ids
}

// Value возвращает сохраненную долю занятости без масштабирования
func (t *CongestionTable) Value(lotID string, row int) (float64, bool) {
	col, ok := t.columns[lotID]
	if !ok || row < 0 || row >= len(col) || col[row] == nil {
		return 0, false
	}
	return *col[row], true
}

// CongestionBook - таблицы загруженности по дням недели
type CongestionBook map[Weekday]*CongestionTable

// HasColumn - есть ли в таблице дня колонка парковки
func (b CongestionBook) HasColumn(weekday Weekday, lotID string) bool {
	table, ok := b[weekday]
	return ok && table != nil && table.HasColumn(lotID)
}

// SeriesPoint - значение загруженности в процентах для метки времени
type SeriesPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// Series - упорядоченный по времени ряд загруженности в процентах (0-100)
type Series struct {
	LotID   string        `json:"lot_id"`
	Weekday Weekday       `json:"weekday"`
	Points  []SeriesPoint `json:"points"`
}

// LookupSeries возвращает ряд для парковки в выбранный день, умножая доли на 100
// при чтении. Отсутствие таблицы, колонки или значений дает ErrSeriesNotFound.
func LookupSeries(book CongestionBook, weekday string, lotID string) (Series, error) {
	day, ok := ParseWeekday(weekday)
	if !ok {
		return Series{}, fmt.Errorf("%w: unknown weekday %q", ErrSeriesNotFound, weekday)
	}

	table, ok := book[day]
	if !ok || table == nil {
		return Series{}, fmt.Errorf("%w: no table for %s", ErrSeriesNotFound, day)
	}

	if !table.HasColumn(lotID) {
		return Series{}, fmt.Errorf("%w: no column %q in %s", ErrSeriesNotFound, lotID, day)
	}

	points := make([]SeriesPoint, 0, len(table.Times))
	for i, tm := range table.Times {
		v, ok := table.Value(lotID, i)
		if !ok {
			continue
		}
		points = append(points, SeriesPoint{Time: tm, Value: v * 100})
	}

	if len(points) == 0 {
		return Series{}, fmt.Errorf("%w: column %q in %s is empty", ErrSeriesNotFound, lotID, day)
	}

	return Series{LotID: lotID, Weekday: day, Points: points}, nil
}
