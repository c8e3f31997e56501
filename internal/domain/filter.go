package domain

import "strings"

// FilterState - выбор пользователя в боковой панели; живет в рамках одного запроса
type FilterState struct {
	District   string
	LotName    string
	LotID      string
	Solar      string
	Congestion string
	Weekday    string
}

// active - критерий участвует в фильтрации, если он не пуст и не равен "전체"
func active(v string) bool {
	return v != "" && v != Wildcard
}

// ApplyFilters сужает набор парковок по району (подстрока адреса), названию,
// пригодности и загруженности (точное совпадение). Порядок входа сохраняется,
// возвращаются указатели на исходные записи.
func ApplyFilters(lots []*Lot, f FilterState) []*Lot {
	result := make([]*Lot, 0, len(lots))
	for _, lot := range lots {
		if matches(lot, f) {
			result = append(result, lot)
		}
	}
	return result
}

func matches(lot *Lot, f FilterState) bool {
	if active(f.District) && !strings.Contains(lot.Address, f.District) {
		return false
	}
	if active(f.LotName) && lot.Name != f.LotName {
		return false
	}
	if active(f.Solar) && string(lot.Solar) != f.Solar {
		return false
	}
	if active(f.Congestion) && string(lot.Congestion) != f.Congestion {
		return false
	}
	return true
}

// LotNames - уникальные названия парковок в порядке первого появления.
// Используется для селектора парковок после фильтра по району.
func LotNames(lots []*Lot) []string {
	seen := make(map[string]struct{}, len(lots))
	names := make([]string, 0, len(lots))
	for _, lot := range lots {
		if _, ok := seen[lot.Name]; ok {
			continue
		}
		seen[lot.Name] = struct{}{}
		names = append(names, lot.Name)
	}
	return names
}

// Selection - как была выбрана одна парковка для графика.
// LotIDs - ID всех парковок с выбранным названием, если их больше одной.
type Selection struct {
	Candidates int      `json:"candidates"`
	Ambiguous  bool     `json:"ambiguous"`
	LotIDs     []string `json:"lot_ids,omitempty"`
}

// SelectLot выбирает одну парковку из отфильтрованного набора.
// LotID однозначен, если такая парковка есть в наборе; иначе при выборе по
// названию берется первое совпадение, а Selection сообщает, сколько парковок
// делят это название.
func SelectLot(filtered []*Lot, f FilterState) (*Lot, Selection) {
	var named []*Lot
	if active(f.LotName) {
		for _, lot := range filtered {
			if lot.Name == f.LotName {
				named = append(named, lot)
			}
		}
	}

	sel := Selection{Candidates: len(named)}
	if len(named) > 1 {
		sel.LotIDs = make([]string, 0, len(named))
		for _, lot := range named {
			sel.LotIDs = append(sel.LotIDs, lot.ID)
		}
	}

	if active(f.LotID) {
		for _, lot := range filtered {
			if lot.ID != f.LotID {
				continue
			}
			if sel.Candidates == 0 {
				sel.Candidates = 1
			}
			return lot, sel
		}
	}

	if len(named) == 0 {
		return nil, sel
	}

	sel.Ambiguous = len(named) > 1
	return named[0], sel
}
