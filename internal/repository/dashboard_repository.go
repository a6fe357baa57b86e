package repository

import (
	"context"
	"time"

	"shawarma/internal/domain/model"
)

// 集計クエリ。キャンセル済み注文は売上に含めない。
type DashboardRepository interface {
	Summary(ctx context.Context) (model.DashboardSummary, error)
	DailySales(ctx context.Context, date time.Time) (model.SalesReport, error)
	MonthlySales(ctx context.Context, month int, year int) (model.SalesReport, error)
	YearlySales(ctx context.Context, year int) ([]model.MonthlySalesRow, error)
	TopSellingItems(ctx context.Context, topN int) ([]model.TopSellingItem, error)
	SalesByHour(ctx context.Context, date time.Time) ([]model.HourlySalesRow, error)
}
