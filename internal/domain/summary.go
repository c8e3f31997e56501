package domain

import "time"

// DatasetSummary - агрегированная статистика по загруженным данным
type DatasetSummary struct {
	TotalLots      int                     `json:"total_lots"`
	ByDistrict     map[string]int          `json:"by_district"`
	BySolar        map[SolarLabel]int      `json:"by_solar"`
	ByCongestion   map[CongestionLabel]int `json:"by_congestion"`
	WeekdayColumns map[Weekday]int         `json:"weekday_columns"`
	LotsWithoutAny int                     `json:"lots_without_congestion"`
	LoadedAt       time.Time               `json:"loaded_at"`
}

// Summarize считает статистику по парковкам и покрытию таблицами загруженности
func Summarize(lots []*Lot, book CongestionBook, loadedAt time.Time) *DatasetSummary {
	s := &DatasetSummary{
		TotalLots:      len(lots),
		ByDistrict:     make(map[string]int, len(Districts)),
		BySolar:        make(map[SolarLabel]int, len(SolarLabels)),
		ByCongestion:   make(map[CongestionLabel]int, len(CongestionLabels)),
		WeekdayColumns: make(map[Weekday]int, len(Weekdays)),
		LoadedAt:       loadedAt,
	}

	for _, lot := range lots {
		for _, d := range Districts {
			if matches(lot, FilterState{District: d}) {
				s.ByDistrict[d]++
			}
		}
		s.BySolar[lot.Solar]++
		s.ByCongestion[lot.Congestion]++

		covered := false
		for _, table := range book {
			if table.HasColumn(lot.ID) {
				covered = true
				break
			}
		}
		if !covered {
			s.LotsWithoutAny++
		}
	}

	for day, table := range book {
		s.WeekdayColumns[day] = len(table.order)
	}

	return s
}
