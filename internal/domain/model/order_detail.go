package model

// 注文明細。商品名とカテゴリは注文時点のスナップショット。
type OrderDetail struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"orderDetailID"`
	OrderID  int64   `gorm:"not null;index" json:"orderID"`
	ItemID   int64   `gorm:"not null;index" json:"itemID"`
	ItemName string  `gorm:"type:varchar(255);not null" json:"itemName"`
	Category string  `gorm:"type:varchar(100);not null" json:"category"`
	Quantity int64   `gorm:"not null" json:"quantity"`
	Subtotal float64 `gorm:"type:numeric(10,2);not null" json:"subtotal"`
}
