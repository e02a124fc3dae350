package main

import (
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/notifier"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const refreshTTL = 30 * 24 * time.Hour

func main() {
	// .envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Store{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.CompletedOrder{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//SMS（SMS_API_URL未設定なら送らない）
	var sms notifier.Notifier = notifier.NoopNotifier{}
	if cfg.SMSAPIURL != "" {
		sms = notifier.NewHTTPNotifier(cfg.SMSAPIURL, log)
	}

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	storeUC := usecase.NewStoreUsecase(storeRepo, productRepo)
	productUC := usecase.NewProductUsecase(productRepo, storeRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo, storeRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo)
	sellerOrderUC := usecase.NewSellerOrderUsecase(txManager, orderRepo, orderItemRepo, storeRepo, sms, log)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC, refreshTTL),
		Store:         handler.NewStoreHandler(storeUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		SellerStore:   handler.NewSellerStoreHandler(storeUC),
		SellerProduct: handler.NewSellerProductHandler(productUC),
		SellerOrder:   handler.NewSellerOrderHandler(sellerOrderUC),
	}

	e := server.New(cfg, log, userRepo, handlers)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.GoEnv).Msg("server start")

	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
