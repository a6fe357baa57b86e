package repository

import (
	"context"
	"time"

	"shawarma/internal/domain/model"

	"gorm.io/gorm"
)

// 集計はストアドの代わりに生SQLで行う。
// キャンセル済み注文は売上から除外する。
type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) Summary(ctx context.Context) (model.DashboardSummary, error) {
	var s model.DashboardSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders WHERE order_date::date = CURRENT_DATE) AS today_orders,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders
				WHERE order_date::date = CURRENT_DATE AND status <> ?) AS today_sales,
			(SELECT COUNT(*) FROM menu_items WHERE is_available = TRUE) AS available_items,
			(SELECT COUNT(*) FROM users WHERE role = ?) AS total_customers,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> ?) AS total_revenue
	`, model.OrderStatusCancelled, model.RoleCustomer, model.OrderStatusCancelled).
		Scan(&s).Error
	if err != nil {
		return model.DashboardSummary{}, err
	}
	return s, nil
}

func (r *DashboardGormRepository) DailySales(ctx context.Context, date time.Time) (model.SalesReport, error) {
	var rep model.SalesReport
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_sales,
			COALESCE(AVG(total_amount), 0) AS average_sale
		FROM orders
		WHERE order_date::date = ?::date AND status <> ?
	`, date, model.OrderStatusCancelled).Scan(&rep).Error
	if err != nil {
		return model.SalesReport{}, err
	}
	return rep, nil
}

func (r *DashboardGormRepository) MonthlySales(ctx context.Context, month int, year int) (model.SalesReport, error) {
	var rep model.SalesReport
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_sales,
			COALESCE(AVG(total_amount), 0) AS average_sale
		FROM orders
		WHERE EXTRACT(MONTH FROM order_date) = ?
		  AND EXTRACT(YEAR FROM order_date) = ?
		  AND status <> ?
	`, month, year, model.OrderStatusCancelled).Scan(&rep).Error
	if err != nil {
		return model.SalesReport{}, err
	}
	return rep, nil
}

func (r *DashboardGormRepository) YearlySales(ctx context.Context, year int) ([]model.MonthlySalesRow, error) {
	var rows []model.MonthlySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM order_date)::int AS month,
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_sales
		FROM orders
		WHERE EXTRACT(YEAR FROM order_date) = ? AND status <> ?
		GROUP BY 1
		ORDER BY 1
	`, year, model.OrderStatusCancelled).Scan(&rows).Error
	if err != nil {
		return []model.MonthlySalesRow{}, err
	}
	return rows, nil
}

func (r *DashboardGormRepository) TopSellingItems(ctx context.Context, topN int) ([]model.TopSellingItem, error) {
	var rows []model.TopSellingItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			od.item_id AS item_id,
			od.item_name AS name,
			od.category AS category,
			SUM(od.quantity) AS total_sold,
			COALESCE(SUM(od.subtotal), 0) AS total_revenue
		FROM order_details od
		JOIN orders o ON o.id = od.order_id
		WHERE o.status <> ?
		GROUP BY od.item_id, od.item_name, od.category
		ORDER BY SUM(od.quantity) DESC
		LIMIT ?
	`, model.OrderStatusCancelled, topN).Scan(&rows).Error
	if err != nil {
		return []model.TopSellingItem{}, err
	}
	return rows, nil
}

func (r *DashboardGormRepository) SalesByHour(ctx context.Context, date time.Time) ([]model.HourlySalesRow, error) {
	var rows []model.HourlySalesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(HOUR FROM order_date)::int AS hour,
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_amount), 0) AS total_sales
		FROM orders
		WHERE order_date::date = ?::date AND status <> ?
		GROUP BY 1
		ORDER BY 1
	`, date, model.OrderStatusCancelled).Scan(&rows).Error
	if err != nil {
		return []model.HourlySalesRow{}, err
	}
	return rows, nil
}
