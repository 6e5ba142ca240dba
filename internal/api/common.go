// Package api はHTTP APIのリクエスト/レスポンス型を定義します。
package api

// ErrorResponse はエラー時のレスポンスです。内部エラーの詳細は含めません。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時のJWTトークンです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest はユーザー登録リクエストです。
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest はログインリクエストです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
