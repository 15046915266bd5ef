package main

import (
	"flora/internal/config"
	"flora/internal/domain/model"
	"flora/internal/handler"
	"flora/internal/infra/db"
	infraRepo "flora/internal/infra/repository"
	"flora/internal/notify"
	"flora/internal/server"
	"flora/internal/usecase"
	"flora/pkg/log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無くても良い（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.L.Fatal("config load failed", zap.Error(err))
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.L.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Delivery{},
	); err != nil {
		log.L.Fatal("migrate failed", zap.Error(err))
	}

	//Redis（注文通知のpublish先）
	redisClient := notify.NewRedisClient(cfg)
	publisher := notify.NewRedisPublisher(redisClient, cfg.NotifyChannel)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	adminRepo := infraRepo.NewAdminGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	deliveryRepo := infraRepo.NewDeliveryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	devMode := cfg.GoEnv == "dev"
	authUC := usecase.NewAuthUsecase(userRepo, adminRepo, cfg.TelegramBotToken, cfg.JWTSecret, devMode)
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, publisher, log.L)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, deliveryRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	log.L.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := server.Start(e, cfg.Port); err != nil {
		log.L.Fatal("server stopped", zap.Error(err))
	}
}
