package dto

import "github.com/parking-dashboard/internal/domain"

// LotDTO - парковка с цветом маркера для карты
type LotDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Solar      string  `json:"solar"`
	Congestion string  `json:"congestion"`
	Color      string  `json:"color"`
}

// NewLotDTO конвертирует доменную парковку
func NewLotDTO(lot *domain.Lot) LotDTO {
	return LotDTO{
		ID:         lot.ID,
		Name:       lot.Name,
		Address:    lot.Address,
		Lat:        lot.Lat,
		Lon:        lot.Lon,
		Solar:      string(lot.Solar),
		Congestion: string(lot.Congestion),
		Color:      lot.Congestion.Color(),
	}
}

// MessageLevel - уровень сообщения для пользователя
type MessageLevel string

const (
	MessageWarning MessageLevel = "warning"
	MessageInfo    MessageLevel = "info"
)

// Message - информационное сообщение дашборда (пустой результат, нет данных и т.п.)
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

// FilterResponse - результат фильтрации для карты, таблицы и графика
type FilterResponse struct {
	Filter    FilterRequest    `json:"filter"`
	Lots      []LotDTO         `json:"lots"`
	Total     int              `json:"total"`
	Selected  *LotDTO          `json:"selected,omitempty"`
	Selection domain.Selection `json:"selection"`
	Weekday   domain.Weekday   `json:"weekday"`
	Series    *domain.Series   `json:"series,omitempty"`
	Messages  []Message        `json:"messages,omitempty"`
}

// OptionsResponse - значения для селекторов боковой панели
type OptionsResponse struct {
	Districts  []string `json:"districts"`
	Lots       []string `json:"lots"`
	Solar      []string `json:"solar"`
	Congestion []string `json:"congestion"`
	Weekdays   []string `json:"weekdays"`
}
