package model

import "time"

// 販売メニュー。Quantityが現在の在庫数。
type MenuItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"itemID"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	ImagePath   string    `gorm:"type:varchar(500)" json:"imagePath"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
