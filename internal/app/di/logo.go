package di

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	crmadapters "outreach_backend/internal/feature/crm/adapters"
	"outreach_backend/internal/feature/logodetection/adapters/vision"
	logohandler "outreach_backend/internal/feature/logodetection/transport/handler"
	logousecase "outreach_backend/internal/feature/logodetection/usecase"
)

// NewLogoDetection はCloud Visionでロゴを検出し、CRMの企業と照合するハンドラーを生成します。
// Visionクライアントを生成できない場合（認証情報がないなど）は nil を返します。
func NewLogoDetection(ctx context.Context, db *gorm.DB) (*logohandler.LogoDetectionHandler, func()) {
	detector, err := vision.NewVisionLogoDetector(ctx)
	if err != nil {
		slog.Warn("vision client unavailable; logo detection disabled", "error", err)
		return nil, func() {}
	}
	uc := logousecase.NewLogoDetectionUsecase(detector, crmadapters.NewCompanyGorm(db))
	return logohandler.NewLogoDetectionHandler(uc), func() {
		if err := detector.Close(); err != nil {
			slog.Error("failed to close vision client", "error", err)
		}
	}
}
