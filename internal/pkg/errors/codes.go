package errors

import "net/http"

var (
	ErrLotNotFound = New(
		"LOT_NOT_FOUND",
		"Parking lot not found",
		http.StatusNotFound,
	)

	ErrSeriesNotFound = New(
		"SERIES_NOT_FOUND",
		"No congestion data for the selected lot and weekday",
		http.StatusNotFound,
	)

	ErrInvalidWeekday = New(
		"INVALID_WEEKDAY",
		"Unknown weekday",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatasetUnavailable = New(
		"DATASET_UNAVAILABLE",
		"Dataset is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrChartRender = New(
		"CHART_RENDER_ERROR",
		"Failed to render chart",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
