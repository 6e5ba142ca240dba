// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	"outreach_backend/internal/app/di"
	authhandler "outreach_backend/internal/feature/auth/transport/handler"
	logohandler "outreach_backend/internal/feature/logodetection/transport/handler"
	outreachhandler "outreach_backend/internal/feature/outreach/transport/handler"
	replieshandler "outreach_backend/internal/feature/replies/transport/handler"
	"outreach_backend/internal/platform/http/handler"
	"outreach_backend/internal/platform/http/middleware"
	jwtmw "outreach_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー一式です。Logo が nil の場合はロゴ検出を登録しません。
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *authhandler.AuthHandler
	CRM       *di.CRM
	Outreach  *outreachhandler.OutreachHandler
	Replies   *replieshandler.RepliesHandler
	Logo      *logohandler.LogoDetectionHandler
	JWTSecret string
}

// crudHandler は一覧・詳細・作成・置換・部分更新・削除を提供するハンドラーです。
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Replace(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// 認証必須のルート
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(h.JWTSecret))
	{
		companies := registerCRUD(api, "/companies", h.CRM.Companies)
		companies.GET("/:id/emails", h.CRM.Companies.Emails)

		registerCRUD(api, "/templates", h.CRM.Templates)
		emails := registerCRUD(api, "/emails", h.CRM.Emails)
		emails.POST("/track_replies", h.Replies.TrackReplies)
		registerCRUD(api, "/prompts", h.CRM.Prompts)

		generator := api.Group("/emailGenerator")
		generator.POST("/generate", h.Outreach.GenerateCompanies)
		generator.POST("/generate_email", h.Outreach.GenerateEmail)
		generator.POST("/send_email", h.Outreach.SendEmail)

		if h.Logo != nil {
			api.POST("/logo/detect", h.Logo.DetectLogos)
		}
	}

	return r
}

func registerCRUD(api *gin.RouterGroup, path string, h crudHandler) *gin.RouterGroup {
	g := api.Group(path)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
	return g
}
