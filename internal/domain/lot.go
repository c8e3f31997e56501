package domain

// Wildcard - значение фильтра "전체", означающее отсутствие ограничения
const Wildcard = "전체"

// Названия колонок основного файла с данными о парковках
const (
	ColumnLotID      = "주차장_ID"
	ColumnLotName    = "주차장명"
	ColumnAddress    = "지번주소"
	ColumnLatitude   = "위도"
	ColumnLongitude  = "경도"
	ColumnSolar      = "태양광 적합 여부"
	ColumnCongestion = "혼잡도"
)

// RequiredLotColumns - колонки, без которых основной файл считается невалидным
var RequiredLotColumns = []string{
	ColumnLotID,
	ColumnLotName,
	ColumnAddress,
	ColumnLatitude,
	ColumnLongitude,
	ColumnSolar,
	ColumnCongestion,
}

// SolarLabel - пригодность парковки для установки солнечных панелей
type SolarLabel string

const (
	SolarSuitable   SolarLabel = "적합"
	SolarUnsuitable SolarLabel = "부적합"
)

// CongestionLabel - категория загруженности парковки
type CongestionLabel string

const (
	CongestionLight     CongestionLabel = "여유"
	CongestionModerate  CongestionLabel = "보통"
	CongestionCongested CongestionLabel = "혼잡"
)

// Districts - районы Тэгу в порядке отображения в селекторе
var Districts = []string{"중구", "북구", "동구", "서구", "남구", "수성구", "달서구", "군위군"}

// SolarLabels - допустимые значения пригодности
var SolarLabels = []SolarLabel{SolarSuitable, SolarUnsuitable}

// CongestionLabels - допустимые категории загруженности
var CongestionLabels = []CongestionLabel{CongestionLight, CongestionModerate, CongestionCongested}

// Valid проверяет, что метка входит в перечисление
func (s SolarLabel) Valid() bool {
	for _, l := range SolarLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Valid проверяет, что метка входит в перечисление
func (c CongestionLabel) Valid() bool {
	for _, l := range CongestionLabels {
		if c == l {
			return true
		}
	}
	return false
}

// Color - цвет маркера на карте для категории загруженности
func (c CongestionLabel) Color() string {
	switch c {
	case CongestionLight:
		return "#2ecc71"
	case CongestionModerate:
		return "#f39c12"
	case CongestionCongested:
		return "#e74c3c"
	default:
		return "#7f8c8d"
	}
}

// Lot - общественная парковка из основного набора данных.
// Загружается один раз и далее не изменяется.
type Lot struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Address    string          `json:"address" db:"address"`
	Lat        float64         `json:"lat" db:"lat"`
	Lon        float64         `json:"lon" db:"lon"`
	Solar      SolarLabel      `json:"solar" db:"solar"`
	Congestion CongestionLabel `json:"congestion" db:"congestion"`
}

// MapCenter - центр карты Тэгу по умолчанию
var MapCenter = struct {
	Lat  float64
	Lon  float64
	Zoom int
}{Lat: 35.8714, Lon: 128.6014, Zoom: 11}
