package repository

import (
	"context"

	"shawarma/internal/domain/model"
)

type StockRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, itemID int64, newQuantity int64) error

	// 在庫が足りるときだけ減算する（条件付きUPDATE）。
	// falseは在庫不足。注文確定トランザクションの中で呼ぶこと。
	DecreaseStockIfEnough(ctx context.Context, itemID int64, qty int64) (bool, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adj model.StockAdjustment) error
}
