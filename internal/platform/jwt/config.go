// Package jwtmw はJWTの発行と、Ginの認証ミドルウェアを提供します。
package jwtmw

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret は署名鍵の環境変数名です。
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration はトークン有効期間の環境変数名です（例: "24h"）。
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	// DefaultExpiration はトークンの既定の有効期間です。
	DefaultExpiration = 24 * time.Hour
	// Issuer は発行するトークンの iss クレームです。
	Issuer = "outreach_backend"
)

// Config はJWT設定です。
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig は環境変数からJWT設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{Secret: os.Getenv(EnvKeyJWTSecret), Expiration: DefaultExpiration}
	if v := os.Getenv(EnvKeyJWTExpiration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid JWT_EXPIRATION, using default", "value", v, "default", DefaultExpiration)
		} else {
			cfg.Expiration = d
		}
	}
	return cfg
}
