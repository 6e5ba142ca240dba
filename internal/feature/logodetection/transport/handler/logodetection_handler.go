// Package handler はlogodetectionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/logodetection/domain"
	"outreach_backend/internal/feature/logodetection/domain/entity"
	"outreach_backend/internal/feature/logodetection/usecase"
)

// LogoDetectionUsecase はロゴ検出のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type LogoDetectionUsecase interface {
	DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
}

// LogoDetectionHandler はロゴ検出のHTTPリクエストを処理します。
type LogoDetectionHandler struct {
	uc LogoDetectionUsecase
}

// NewLogoDetectionHandler はLogoDetectionHandlerの新しいインスタンスを生成します。
func NewLogoDetectionHandler(uc LogoDetectionUsecase) *LogoDetectionHandler {
	return &LogoDetectionHandler{uc: uc}
}

// DetectLogos は画像をアップロードしてロゴを検出し、CRMの企業と照合します。
//
// エンドポイント: POST /api/logo/detect
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *LogoDetectionHandler) DetectLogos(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	// 上限+1バイトまで読めばサイズ超過を判定できる
	imageData, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}

	logos, err := h.uc.DetectLogos(c.Request.Context(), imageData)
	switch {
	case errors.Is(err, domain.ErrEmptyImage):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが空です"})
		return
	case errors.Is(err, domain.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像サイズが上限（10MB）を超えています"})
		return
	case err != nil:
		slog.Error("ロゴ検出に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "ロゴ検出に失敗しました"})
		return
	}

	out := make([]api.DetectedLogoResponse, 0, len(logos))
	for _, l := range logos {
		out = append(out, api.DetectedLogoResponse{
			Name:           l.Name,
			Confidence:     l.Confidence,
			KnownCompanyID: l.KnownCompanyID,
		})
	}
	c.JSON(http.StatusOK, out)
}
