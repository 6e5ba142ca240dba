package di

import (
	"log/slog"

	"gorm.io/gorm"

	authadapters "outreach_backend/internal/feature/auth/adapters"
	authhandler "outreach_backend/internal/feature/auth/transport/handler"
	authusecase "outreach_backend/internal/feature/auth/usecase"
	jwtmw "outreach_backend/internal/platform/jwt"
)

// NewAuth はサインアップ・ログインのハンドラーと、認証ミドルウェアに渡すJWT設定を返します。
func NewAuth(db *gorm.DB) (*authhandler.AuthHandler, jwtmw.Config) {
	cfg := jwtmw.LoadConfig()
	if cfg.Secret == "" {
		slog.Warn("JWT_SECRET is not set; login and /api routes will fail")
	}

	users := authadapters.NewUserGorm(db)
	generator := jwtmw.NewGenerator(cfg.Secret, cfg.Expiration)
	return authhandler.NewAuthHandler(authusecase.NewAuthUsecase(users, generator)), cfg
}
