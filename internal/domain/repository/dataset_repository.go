package repository

import (
	"context"

	"github.com/parking-dashboard/internal/domain"
)

// DatasetRepository - источник исходных данных (xlsx файлы или снимок в PostgreSQL).
// Любая ошибка загрузки фатальна для старта.
type DatasetRepository interface {
	// LoadLots загружает все парковки
	LoadLots(ctx context.Context) ([]*domain.Lot, error)

	// LoadCongestion загружает таблицы загруженности по дням недели
	LoadCongestion(ctx context.Context) (domain.CongestionBook, error)
}

// SnapshotRepository сохраняет загруженный набор данных целиком
type SnapshotRepository interface {
	// ReplaceSnapshot заменяет предыдущий снимок в одной транзакции
	ReplaceSnapshot(ctx context.Context, lots []*domain.Lot, book domain.CongestionBook) error
}
