package repository

import (
	"context"

	"shawarma/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//全注文（顧客名・メールをJOINで付ける。管理者用）
	ListAll(ctx context.Context) ([]model.Order, error)

	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
