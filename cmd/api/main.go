package main

import (
	"log"

	"socialdog/internal/config"
	"socialdog/internal/domain/model"
	"socialdog/internal/handler"
	"socialdog/internal/infra/db"
	infraRepo "socialdog/internal/infra/repository"
	"socialdog/internal/middleware"
	"socialdog/internal/server"
	"socialdog/internal/token"
	"socialdog/internal/usecase"
	"socialdog/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	// .envが無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.Bark{},
		&model.Sniff{},
	); err != nil {
		log.Fatal(err)
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	tokenRepo := infraRepo.NewAuthTokenRepository(gormDB)
	barkRepo := infraRepo.NewBarkGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// JWT codec
	codec := token.NewCodec(cfg.JWTSecret)

	// Validator
	authValidator := validator.NewAuthValidator()

	// Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, tokenRepo, txManager, codec, authValidator)
	userUC := usecase.NewUserUsecase(userRepo, txManager, authValidator)
	barkUC := usecase.NewBarkUsecase(barkRepo)
	sniffUC := usecase.NewSniffUsecase(txManager)

	// Handler生成
	authH := handler.NewAuthHandler(authUC)
	userH := handler.NewUserHandler(userUC)
	barkH := handler.NewBarkHandler(barkUC)
	sniffH := handler.NewSniffHandler(sniffUC)

	// 2方式Bearer認証ミドルウェア
	authMW := middleware.DualAuth(userRepo, tokenRepo, codec)

	// Server起動
	e := server.New(cfg, authMW, authH, userH, barkH, sniffH)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
