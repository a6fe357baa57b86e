package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shawarma/internal/config"
	"shawarma/internal/handler"
	"shawarma/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func customerToken(t *testing.T, userID string) string {
	t.Helper()
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": "ali@example.com",
		"role":  "Customer",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func newOrderTestServer() *echo.Echo {
	cfg := config.Config{JWTSecret: testSecret}

	//403の分岐はusecaseに届く前なので依存はnilでよい
	h := handler.NewOrderHandler(usecase.NewOrderUsecase(nil, nil, nil, nil, nil, nil))

	e := echo.New()
	h.RegisterRoutes(e, cfg)
	return e
}

// 他人のuserIDで注文は出せない
func TestOrderHandler_Create_UserIDMismatchForbidden(t *testing.T) {
	e := newOrderTestServer()

	body := `{"userID":8,"totalAmount":17.00,"orderDetails":[{"itemID":1,"quantity":2,"subtotal":17.00}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+customerToken(t, "7"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestOrderHandler_Create_RequiresToken(t *testing.T) {
	e := newOrderTestServer()

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 自分以外の注文一覧は見られない
func TestOrderHandler_ListByUser_OtherUserForbidden(t *testing.T) {
	e := newOrderTestServer()

	req := httptest.NewRequest(http.MethodGet, "/orders/user/8", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t, "7"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// 全注文一覧はAdminのみ
func TestOrderHandler_ListAll_CustomerForbidden(t *testing.T) {
	e := newOrderTestServer()

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken(t, "7"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
