package main

import (
	"strconv"
	"time"

	"shawarma/internal/config"
	"shawarma/internal/domain/model"
	"shawarma/internal/handler"
	"shawarma/internal/infra/cache"
	"shawarma/internal/infra/db"
	"shawarma/internal/infra/events"
	infraRepo "shawarma/internal/infra/repository"
	"shawarma/internal/server"
	"shawarma/internal/usecase"
	"shawarma/internal/validator"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, email string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envはあれば読む（本番は環境変数のみ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderDetail{},
		&model.StockAdjustment{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuGormRepository(gormDB)
	stockRepo := infraRepo.NewStockGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	detailRepo := infraRepo.NewOrderDetailGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	dashRepo := infraRepo.NewDashboardGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//メニューキャッシュ（REDIS_ADDRが空なら無効）
	var menuCache usecase.MenuCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		menuCache = cache.NewMenuRedisCache(rdb)
	}

	//注文イベント（KAFKA_BROKERSが空なら無効）
	var orderEvents usecase.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		defer writer.Close()
		orderEvents = events.NewKafkaOrderPublisher(writer)
	}

	//usecaseに渡す部品
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	authValidator := validator.NewAuthValidator()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, hasher, verifier, issuer, clock)
	menuUC := usecase.NewMenuUsecase(menuRepo, stockRepo, auditRepo, menuCache)
	orderUC := usecase.NewOrderUsecase(txManager, menuRepo, orderRepo, detailRepo, menuCache, orderEvents)
	dashUC := usecase.NewDashboardUsecase(dashRepo, clock)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	menuH := handler.NewMenuHandler(menuUC)
	orderH := handler.NewOrderHandler(orderUC)
	dashH := handler.NewDashboardHandler(dashUC)

	//Server起動
	e := server.New(cfg, authH, menuH, orderH, dashH)
	if err := e.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}
