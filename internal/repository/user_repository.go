package repository

import (
	"context"

	"shawarma/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	Create(ctx context.Context, user model.User) (int64, error)
}
