package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"shawarma/internal/domain/model"
	repo "shawarma/internal/repository"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// メニュー1件の読み取りキャッシュ。nilなら無効。
type MenuCache interface {
	Get(ctx context.Context, itemID int64) (model.MenuItem, bool)
	Set(ctx context.Context, item model.MenuItem)
	Delete(ctx context.Context, itemID int64)
}

type MenuUsecase struct {
	menuRepo  repo.MenuRepository
	stockRepo repo.StockRepository
	auditRepo repo.AuditLogRepository
	cache     MenuCache
}

// DI。cacheはnil可。
func NewMenuUsecase(
	menuRepo repo.MenuRepository,
	stockRepo repo.StockRepository,
	auditRepo repo.AuditLogRepository,
	cache MenuCache,
) *MenuUsecase {
	return &MenuUsecase{
		menuRepo:  menuRepo,
		stockRepo: stockRepo,
		auditRepo: auditRepo,
		cache:     cache,
	}
}

func (u *MenuUsecase) GetAllMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.ListAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing menu items")
		return []model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *MenuUsecase) GetAvailableMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.ListAvailable(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing available menu items")
		return []model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *MenuUsecase) GetMenuItemByID(ctx context.Context, itemID int64) (model.MenuItem, error) {
	if itemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if u.cache != nil {
		if item, ok := u.cache.Get(ctx, itemID); ok {
			return item, nil
		}
	}

	item, err := u.menuRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting menu item %d", itemID)
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Set(ctx, item)
	}
	return item, nil
}

type AddMenuItemInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    int64
	ImagePath   string
	IsAvailable bool
}

func (u *MenuUsecase) AddMenuItem(ctx context.Context, adminUserID int64, in AddMenuItemInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "Category is required")
	}
	if in.Price <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "Price must be greater than 0")
	}
	if in.Quantity < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "Quantity cannot be negative")
	}

	now := time.Now()
	itemID, err := u.menuRepo.Create(ctx, model.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImagePath:   in.ImagePath,
		IsAvailable: in.IsAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating menu item")
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return itemID, nil
}

type UpdateMenuItemInput struct {
	ItemID      int64
	Name        string
	Category    string
	Price       float64
	Quantity    int64
	ImagePath   string
	IsAvailable bool
}

func (u *MenuUsecase) UpdateMenuItem(ctx context.Context, adminUserID int64, in UpdateMenuItemInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//存在チェックを先に（404を価格エラーより優先）
	if _, err := u.menuRepo.FindByID(ctx, in.ItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		logger.Error().Err(err).Msgf("Error getting menu item %d", in.ItemID)
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "Price must be greater than 0")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "Quantity cannot be negative")
	}

	err := u.menuRepo.Update(ctx, model.MenuItem{
		ID:          in.ItemID,
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImagePath:   in.ImagePath,
		IsAvailable: in.IsAvailable,
		UpdatedAt:   time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating menu item %d", in.ItemID)
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Delete(ctx, in.ItemID)
	}
	return nil
}

func (u *MenuUsecase) DeleteMenuItem(ctx context.Context, adminUserID int64, itemID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.menuRepo.Delete(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting menu item %d", itemID)
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Delete(ctx, itemID)
	}
	return nil
}

type UpdateStockOutput struct {
	ItemID          int64  `json:"itemId"`
	UpdatedQuantity int64  `json:"updatedQuantity"`
	Message         string `json:"message"`
}

// 在庫数を直接設定する（管理者）。調整履歴と監査ログを残す。
func (u *MenuUsecase) UpdateStock(ctx context.Context, adminUserID int64, itemID int64, quantity int64, reason string) (UpdateStockOutput, error) {
	if adminUserID <= 0 {
		return UpdateStockOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return UpdateStockOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity < 0 {
		return UpdateStockOutput{}, NewHTTPError(http.StatusBadRequest, "Quantity cannot be negative")
	}

	//変更前の在庫（before）
	item, err := u.menuRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return UpdateStockOutput{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting menu item %d", itemID)
		return UpdateStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.stockRepo.SetStock(ctx, itemID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UpdateStockOutput{}, NewHTTPError(http.StatusNotFound, "Menu item not found")
		}
		logger.Error().Err(err).Msgf("Error setting stock for item %d", itemID)
		return UpdateStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if strings.TrimSpace(reason) == "" {
		reason = "Manual stock update"
	}

	//履歴（差分）
	if err := u.stockRepo.CreateAdjustment(ctx, model.StockAdjustment{
		ItemID:      itemID,
		AdminUserID: adminUserID,
		Delta:       quantity - item.Quantity,
		Reason:      strings.TrimSpace(reason),
		CreatedAt:   time.Now(),
	}); err != nil {
		logger.Error().Err(err).Msgf("Error creating stock adjustment for item %d", itemID)
		return UpdateStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（UPDATE_STOCK）
	beforeJSON := fmt.Sprintf(`{"quantity":%d}`, item.Quantity)
	afterJSON := fmt.Sprintf(`{"quantity":%d}`, quantity)
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceMenuItem,
		ResourceID:   itemID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    time.Now(),
	}); err != nil {
		logger.Error().Err(err).Msgf("Error creating audit log for item %d", itemID)
		return UpdateStockOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if u.cache != nil {
		u.cache.Delete(ctx, itemID)
	}

	return UpdateStockOutput{
		ItemID:          itemID,
		UpdatedQuantity: quantity,
		Message:         "Stock updated successfully",
	}, nil
}
