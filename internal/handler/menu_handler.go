package handler

import (
	"net/http"
	"strconv"

	"shawarma/internal/config"
	"shawarma/internal/middleware"
	"shawarma/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

// /menu のAPI。閲覧は公開、変更は管理者のみ。
type MenuHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

type MenuItemRequest struct {
	ItemID      int64   `json:"itemID"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	ImagePath   string  `json:"imagePath"`
	IsAvailable bool    `json:"isAvailable"`
}

type MenuItemMutationResponse struct {
	ItemID  int64  `json:"itemId"`
	Message string `json:"message"`
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//公開
	e.GET("/menu", h.list)
	e.GET("/menu/available", h.listAvailable)
	e.GET("/menu/:id", h.detail)

	//管理者のみ
	g := e.Group("/menu")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.create)
	g.PUT("", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/stock/:id", h.updateStock)
}

func (h *MenuHandler) list(c echo.Context) error {
	items, err := h.uc.GetAllMenuItems(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) listAvailable(c echo.Context) error {
	items, err := h.uc.GetAvailableMenuItems(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	item, err := h.uc.GetMenuItemByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	itemID, err := h.uc.AddMenuItem(c.Request().Context(), adminID, usecase.AddMenuItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImagePath:   req.ImagePath,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, MenuItemMutationResponse{
		ItemID:  itemID,
		Message: "Menu item added successfully",
	})
}

func (h *MenuHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	err := h.uc.UpdateMenuItem(c.Request().Context(), adminID, usecase.UpdateMenuItemInput{
		ItemID:      req.ItemID,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImagePath:   req.ImagePath,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MenuItemMutationResponse{
		ItemID:  req.ItemID,
		Message: "Menu item updated successfully",
	})
}

func (h *MenuHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MenuItemMutationResponse{
		ItemID:  id,
		Message: "Menu item deleted successfully",
	})
}

// PATCH /menu/stock/:id?quantity=10
func (h *MenuHandler) updateStock(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	quantity, err := strconv.ParseInt(c.QueryParam("quantity"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid quantity"})
	}

	out, err := h.uc.UpdateStock(c.Request().Context(), adminID, id, quantity, c.QueryParam("reason"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
