package usecase

import (
	"context"
	"net/http"
	"time"

	"shawarma/internal/domain/model"
	repo "shawarma/internal/repository"
)

type DashboardUsecase struct {
	dashRepo repo.DashboardRepository
	clock    Clock
}

// DI
func NewDashboardUsecase(dashRepo repo.DashboardRepository, clock Clock) *DashboardUsecase {
	return &DashboardUsecase{dashRepo: dashRepo, clock: clock}
}

func (u *DashboardUsecase) GetSummary(ctx context.Context) (model.DashboardSummary, error) {
	s, err := u.dashRepo.Summary(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting dashboard summary")
		return model.DashboardSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// 日付未指定なら今日
func (u *DashboardUsecase) GetDailySales(ctx context.Context, date *time.Time) (model.SalesReport, error) {
	d := u.clock.Now()
	if date != nil {
		d = *date
	}

	rep, err := u.dashRepo.DailySales(ctx, d)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting daily sales")
		return model.SalesReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rep, nil
}

// 月・年未指定なら今月・今年
func (u *DashboardUsecase) GetMonthlySales(ctx context.Context, month *int, year *int) (model.SalesReport, error) {
	now := u.clock.Now()

	m := int(now.Month())
	if month != nil {
		if *month < 1 || *month > 12 {
			return model.SalesReport{}, NewHTTPError(http.StatusBadRequest, "Month must be between 1 and 12")
		}
		m = *month
	}

	y := now.Year()
	if year != nil {
		if *year < 2000 || *year > now.Year() {
			return model.SalesReport{}, NewHTTPError(http.StatusBadRequest, "Invalid year")
		}
		y = *year
	}

	rep, err := u.dashRepo.MonthlySales(ctx, m, y)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting monthly sales")
		return model.SalesReport{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rep, nil
}

func (u *DashboardUsecase) GetYearlySales(ctx context.Context, year *int) ([]model.MonthlySalesRow, error) {
	now := u.clock.Now()

	y := now.Year()
	if year != nil {
		if *year < 2000 || *year > now.Year() {
			return []model.MonthlySalesRow{}, NewHTTPError(http.StatusBadRequest, "Invalid year")
		}
		y = *year
	}

	rows, err := u.dashRepo.YearlySales(ctx, y)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting yearly sales")
		return []model.MonthlySalesRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 範囲外のtopNはエラーにせず10に丸める
func (u *DashboardUsecase) GetTopSellingItems(ctx context.Context, topN int) ([]model.TopSellingItem, error) {
	if topN <= 0 || topN > 100 {
		topN = 10
	}

	rows, err := u.dashRepo.TopSellingItems(ctx, topN)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting top selling items")
		return []model.TopSellingItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *DashboardUsecase) GetSalesByHour(ctx context.Context, date *time.Time) ([]model.HourlySalesRow, error) {
	d := u.clock.Now()
	if date != nil {
		d = *date
	}

	rows, err := u.dashRepo.SalesByHour(ctx, d)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting sales by hour")
		return []model.HourlySalesRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
