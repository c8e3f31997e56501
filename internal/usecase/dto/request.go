package dto

import "github.com/parking-dashboard/internal/domain"

// FilterRequest - выбор в боковой панели; пустое значение или "전체" отключает критерий
type FilterRequest struct {
	District   string `query:"district" json:"district" validate:"omitempty,max=32"`
	Lot        string `query:"lot" json:"lot" validate:"omitempty,max=128"`
	LotID      string `query:"lot_id" json:"lot_id" validate:"omitempty,max=64"`
	Solar      string `query:"solar" json:"solar" validate:"omitempty,oneof=전체 적합 부적합"`
	Congestion string `query:"congestion" json:"congestion" validate:"omitempty,oneof=전체 여유 보통 혼잡"`
	Weekday    string `query:"weekday" json:"weekday" validate:"omitempty,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}

// State переводит запрос в доменное состояние фильтров
func (r FilterRequest) State() domain.FilterState {
	return domain.FilterState{
		District:   r.District,
		LotName:    r.Lot,
		LotID:      r.LotID,
		Solar:      r.Solar,
		Congestion: r.Congestion,
		Weekday:    r.Weekday,
	}
}

// SeriesRequest - запрос ряда загруженности одной парковки
type SeriesRequest struct {
	LotID   string `params:"id" json:"lot_id" validate:"required,max=64"`
	Weekday string `params:"weekday" json:"weekday" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
}
