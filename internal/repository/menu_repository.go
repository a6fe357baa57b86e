package repository

import (
	"context"

	"shawarma/internal/domain/model"
)

type MenuRepository interface {
	ListAll(ctx context.Context) ([]model.MenuItem, error)

	//販売可能（is_available=true）のみ
	ListAvailable(ctx context.Context) ([]model.MenuItem, error)

	FindByID(ctx context.Context, itemID int64) (model.MenuItem, error)
	Create(ctx context.Context, item model.MenuItem) (int64, error)
	Update(ctx context.Context, item model.MenuItem) error
	Delete(ctx context.Context, itemID int64) error
}
