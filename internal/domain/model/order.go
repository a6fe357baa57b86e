package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"orderID"`
	UserID      int64       `gorm:"not null;index" json:"userID"`
	OrderDate   time.Time   `gorm:"not null;index" json:"orderDate"`
	TotalAmount float64     `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// 一覧取得時にusersからJOINで埋める（カラムとしては持たない）
	CustomerName  string `gorm:"-:migration;->" json:"customerName,omitempty"`
	CustomerEmail string `gorm:"-:migration;->" json:"customerEmail,omitempty"`
}
