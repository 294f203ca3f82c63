package main

import (
	"log"
	"time"

	"bibigin/internal/config"
	"bibigin/internal/domain/model"
	"bibigin/internal/handler"
	"bibigin/internal/infra/db"
	"bibigin/internal/infra/mail"
	infraRepo "bibigin/internal/infra/repository"
	"bibigin/internal/server"
	"bibigin/internal/usecase"
	"bibigin/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無ければ環境変数だけで動かす
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//メール（APIキー未設定なら送らない）
	var mailer usecase.OrderMailer
	if cfg.SendGridAPIKey != "" {
		mailer = mail.NewSendGridOrderMailer(cfg.SendGridAPIKey, cfg.MailFrom, cfg.AdminEmail)
	} else {
		log.Printf("[main] SENDGRID_API_KEY not set, order mail disabled")
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator(), idGen, clock)
	productUC := usecase.NewProductUsecase(productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cfg.ShippingTiers, mailer, idGen, clock, cfg.CheckoutMaxAttempts)
	orderUC := usecase.NewOrderUsecase(txManager)
	userUC := usecase.NewUserUsecase(userRepo, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, auditRepo, clock)
	adminProductUC := usecase.NewAdminProductUsecase(txManager, auditRepo, clock)

	//refresh TTL
	refreshTTL := 30 * 24 * time.Hour

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC, refreshTTL),
		Product:      handler.NewProductHandler(productUC),
		Order:        handler.NewOrderHandler(checkoutUC, orderUC),
		User:         handler.NewUserHandler(userUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminProduct: handler.NewAdminProductHandler(adminProductUC),
	}

	//Server起動
	e := server.New(cfg, handlers, userRepo)
	if err := server.Start(e, cfg.Port); err != nil {
		panic(err)
	}
}
