package handler

import (
	"net/http"
	"strconv"

	"shawarma/internal/config"
	"shawarma/internal/domain/model"
	"shawarma/internal/middleware"
	"shawarma/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderLineRequest struct {
	ItemID   int64   `json:"itemID"`
	Quantity int64   `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type PlaceOrderRequest struct {
	UserID       int64              `json:"userID"`
	TotalAmount  float64            `json:"totalAmount"`
	OrderDetails []OrderLineRequest `json:"orderDetails"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.listAll, middleware.AdminRoleGuard())
	g.GET("/user/:userId", h.listByUser)
	g.GET("/:orderId/details", h.details)
	g.PATCH("/:orderId/status", h.updateStatus, middleware.AdminRoleGuard())
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	//本人の注文しか出せない
	if req.UserID != userID {
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: "forbidden"})
	}

	details := make([]usecase.PlaceOrderLine, 0, len(req.OrderDetails))
	for _, d := range req.OrderDetails {
		details = append(details, usecase.PlaceOrderLine{
			ItemID:   d.ItemID,
			Quantity: d.Quantity,
			Subtotal: d.Subtotal,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		UserID:      req.UserID,
		TotalAmount: req.TotalAmount,
		Details:     details,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listAll(c echo.Context) error {
	orders, err := h.uc.GetAllOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	currentUserID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	//自分の注文のみ（Adminは全員分OK）
	role, _ := getUserRoleFromContext(c)
	if role != string(model.RoleAdmin) && currentUserID != userID {
		return c.JSON(http.StatusForbidden, ErrorResponse{Message: "forbidden"})
	}

	orders, err := h.uc.GetOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) details(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	details, err := h.uc.GetOrderDetails(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// PATCH /orders/:orderId/status?status=Completed
func (h *OrderHandler) updateStatus(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), adminID, orderID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func getUserRoleFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserRoleKey)
	role, ok := v.(string)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}
