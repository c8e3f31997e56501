package domain

import "errors"

var (
	// ErrDatasetInvalid - исходный файл отсутствует, не читается или не содержит нужных колонок.
	// Фатальная ошибка старта.
	ErrDatasetInvalid = errors.New("dataset invalid")

	// ErrSeriesNotFound - для пары (день недели, парковка) нет ряда загруженности.
	// Ожидаемое отсутствие, не ошибка загрузки.
	ErrSeriesNotFound = errors.New("congestion series not found")
)
