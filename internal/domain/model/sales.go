package model

// ダッシュボード系の集計結果。
// フィールドを明示した型で返す（untypedなbagにしない）。

type DashboardSummary struct {
	TodayOrders    int64   `json:"todayOrders"`
	TodaySales     float64 `json:"todaySales"`
	AvailableItems int64   `json:"availableItems"`
	TotalCustomers int64   `json:"totalCustomers"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// 日次・月次の売上レポート
type SalesReport struct {
	TotalOrders int64   `json:"totalOrders"`
	TotalSales  float64 `json:"totalSales"`
	AverageSale float64 `json:"averageSale"`
}

// 年間売上の月別内訳
type MonthlySalesRow struct {
	Month       int     `json:"month"`
	TotalOrders int64   `json:"totalOrders"`
	TotalSales  float64 `json:"totalSales"`
}

type TopSellingItem struct {
	ItemID       int64   `json:"itemID"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	TotalSold    int64   `json:"totalSold"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// 時間帯別売上
type HourlySalesRow struct {
	Hour        int     `json:"hour"`
	TotalOrders int64   `json:"totalOrders"`
	TotalSales  float64 `json:"totalSales"`
}
