package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"shawarma/internal/domain/model"
	repo "shawarma/internal/repository"
)

// 注文イベントの発行（Kafka等）。nilなら無効。
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, order model.Order) error
}

type OrderUsecase struct {
	tx         repo.TransactionManager
	menuRepo   repo.MenuRepository
	orderRepo  repo.OrderRepository
	detailRepo repo.OrderDetailRepository
	cache      MenuCache
	events     OrderEventPublisher
}

// DI。cache/eventsはnil可。
func NewOrderUsecase(
	tx repo.TransactionManager,
	menuRepo repo.MenuRepository,
	orderRepo repo.OrderRepository,
	detailRepo repo.OrderDetailRepository,
	cache MenuCache,
	events OrderEventPublisher,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		menuRepo:   menuRepo,
		orderRepo:  orderRepo,
		detailRepo: detailRepo,
		cache:      cache,
		events:     events,
	}
}

type PlaceOrderLine struct {
	ItemID   int64
	Quantity int64
	Subtotal float64
}

type PlaceOrderInput struct {
	UserID      int64
	TotalAmount float64
	Details     []PlaceOrderLine
}

type PlaceOrderOutput struct {
	OrderID int64  `json:"orderId"`
	Message string `json:"message"`
}

// 注文確定。
// サービス層の在庫チェックはエラーメッセージを具体的にするための楽観的な事前確認で、
// 本当の在庫保証はトランザクション内の条件付き減算（DecreaseStockIfEnough）が持つ。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if in.UserID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Details) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Order must contain at least one item")
	}

	//事前チェック（読み取りのみ・入力順でfail-fast）
	items := make(map[int64]model.MenuItem, len(in.Details))
	for _, d := range in.Details {
		if d.Quantity < 1 {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
		}

		item, err := u.menuRepo.FindByID(ctx, d.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Item with ID %d not found", d.ItemID))
		}
		if err != nil {
			logger.Error().Err(err).Msgf("Error getting menu item %d", d.ItemID)
			return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to place order")
		}
		if !item.IsAvailable {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is not available", item.Name))
		}
		if item.Quantity < d.Quantity {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s. Available: %d", item.Name, item.Quantity))
		}
		items[d.ItemID] = item
	}

	//合計金額の照合（許容誤差0.01）
	var calculatedTotal float64
	for _, d := range in.Details {
		calculatedTotal += d.Subtotal
	}
	if math.Abs(calculatedTotal-in.TotalAmount) > 0.01 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Total amount mismatch")
	}

	var created model.Order

	//確定はトランザクション。在庫はここで再チェックしながら減らす。
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, d := range in.Details {
			ok, err := r.Stock().DecreaseStockIfEnough(ctx, d.ItemID, d.Quantity)
			if err != nil {
				logger.Error().Err(err).Msgf("Error decreasing stock for item %d", d.ItemID)
				return NewHTTPError(http.StatusInternalServerError, "Failed to place order")
			}
			if !ok {
				//事前チェック通過後に他の注文に在庫を取られたケース
				name := items[d.ItemID].Name
				var available int64
				if cur, err := r.Menu().FindByID(ctx, d.ItemID); err == nil {
					available = cur.Quantity
				}
				return NewHTTPError(http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Available: %d", name, available))
			}
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      in.UserID,
			OrderDate:   now,
			TotalAmount: in.TotalAmount,
			Status:      model.OrderStatusPending,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Error creating order")
			return NewHTTPError(http.StatusInternalServerError, "Failed to place order")
		}

		//明細は注文時点のスナップショットを持つ
		details := make([]model.OrderDetail, 0, len(in.Details))
		for _, d := range in.Details {
			item := items[d.ItemID]
			details = append(details, model.OrderDetail{
				ItemID:   d.ItemID,
				ItemName: item.Name,
				Category: item.Category,
				Quantity: d.Quantity,
				Subtotal: d.Subtotal,
			})
		}
		if err := r.OrderDetails().CreateBulk(ctx, orderID, details); err != nil {
			logger.Error().Err(err).Msgf("Error creating order details for order %d", orderID)
			return NewHTTPError(http.StatusInternalServerError, "Failed to place order")
		}

		created = model.Order{
			ID:          orderID,
			UserID:      in.UserID,
			OrderDate:   now,
			TotalAmount: in.TotalAmount,
			Status:      model.OrderStatusPending,
		}
		return nil
	})
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	//在庫が変わったのでキャッシュを落とす
	if u.cache != nil {
		for _, d := range in.Details {
			u.cache.Delete(ctx, d.ItemID)
		}
	}

	//イベント発行はベストエフォート（失敗しても注文は成立）
	if u.events != nil {
		if err := u.events.PublishOrderEvent(ctx, "placed", created); err != nil {
			logger.Warn().Err(err).Msgf("Error publishing placed event for order %d", created.ID)
		}
	}

	return PlaceOrderOutput{
		OrderID: created.ID,
		Message: "Order placed successfully",
	}, nil
}

// 管理者用の全注文一覧
func (u *OrderUsecase) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing all orders")
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) GetOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return []model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing orders for user %d", userID)
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) GetOrderDetails(ctx context.Context, orderID int64) ([]model.OrderDetail, error) {
	if orderID <= 0 {
		return []model.OrderDetail{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	details, err := u.detailRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing details for order %d", orderID)
		return []model.OrderDetail{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(details) == 0 {
		return []model.OrderDetail{}, NewHTTPError(http.StatusNotFound, fmt.Sprintf("No details found for order ID %d", orderID))
	}
	return details, nil
}

type UpdateOrderStatusOutput struct {
	UpdatedOrderID int64  `json:"updatedOrderId"`
	UpdatedStatus  string `json:"updatedStatus"`
	Message        string `json:"message"`
}

// ステータス更新（管理者）。
// ステータスの妥当性チェックは存在チェックより先（存在しない注文でも不正値は拒否）。
// 遷移順の制約は設けない。
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, adminUserID int64, orderID int64, status string) (UpdateOrderStatusOutput, error) {
	newStatus := strings.TrimSpace(status)
	switch model.OrderStatus(newStatus) {
	case model.OrderStatusPending, model.OrderStatusPreparing, model.OrderStatusReady,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
		// OK
	default:
		return UpdateOrderStatusOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	if adminUserID <= 0 {
		return UpdateOrderStatusOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return UpdateOrderStatusOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var updated model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			logger.Error().Err(err).Msgf("Error getting order %d", orderID)
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found")
			}
			logger.Error().Err(err).Msgf("Error updating status of order %d", orderID)
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + string(o.Status) + `"}`
		afterJSON := `{"status":"` + newStatus + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			logger.Error().Err(err).Msgf("Error creating audit log for order %d", orderID)
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		updated = o
		updated.Status = model.OrderStatus(newStatus)
		return nil
	})
	if err != nil {
		return UpdateOrderStatusOutput{}, err
	}

	if u.events != nil {
		if err := u.events.PublishOrderEvent(ctx, "status_updated", updated); err != nil {
			logger.Warn().Err(err).Msgf("Error publishing status_updated event for order %d", orderID)
		}
	}

	return UpdateOrderStatusOutput{
		UpdatedOrderID: orderID,
		UpdatedStatus:  newStatus,
		Message:        "Order status updated successfully",
	}, nil
}
