// Package usecase はlogodetectionフィーチャーのビジネスロジックを実装します。
// 画像から検出したロゴをCRMの企業と突き合わせ、調査パイプラインの入力となる企業名を得ます。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	crmentity "outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/logodetection/domain"
	"outreach_backend/internal/feature/logodetection/domain/entity"
)

// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
const MaxImageSize = 10 * 1024 * 1024

// LogoDetector は画像からロゴを検出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LogoDetector interface {
	// DetectLogos は画像バイト列からロゴを検出し、検出結果を返します。
	DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
}

// CompanyMatcher はロゴ名に一致するCRM上の企業を検索します。
type CompanyMatcher interface {
	// FindByNames は大文字小文字を区別せずに名前が一致する企業を返します。
	FindByNames(ctx context.Context, names []string) ([]crmentity.Company, error)
}

// logodetectionUsecase はロゴ検出と企業照合のビジネスロジックを提供します。
type logodetectionUsecase struct {
	logoDetector LogoDetector
	companies    CompanyMatcher
}

// NewLogoDetectionUsecase はlogodetectionUsecaseの新しいインスタンスを生成します。
// cm が nil の場合は照合を行いません。
func NewLogoDetectionUsecase(ld LogoDetector, cm CompanyMatcher) *logodetectionUsecase {
	return &logodetectionUsecase{logoDetector: ld, companies: cm}
}

// DetectLogos は画像データからロゴを検出し、CRMに登録済みの企業であればそのIDを付与します。
// 照合に失敗した場合はログに記録し、IDなしの検出結果を返します。
func (u *logodetectionUsecase) DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrImageTooLarge, MaxImageSize)
	}

	logos, err := u.logoDetector.DetectLogos(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("logo detection failed: %w", err)
	}
	if len(logos) == 0 || u.companies == nil {
		return logos, nil
	}

	names := make([]string, len(logos))
	for i, l := range logos {
		names[i] = l.Name
	}
	companies, err := u.companies.FindByNames(ctx, names)
	if err != nil {
		slog.Warn("company lookup failed", "error", err, "logos", len(logos))
		return logos, nil
	}

	ids := make(map[string]uint, len(companies))
	for _, c := range companies {
		ids[strings.ToLower(strings.TrimSpace(c.Name))] = c.ID
	}
	for i := range logos {
		if id, ok := ids[strings.ToLower(strings.TrimSpace(logos[i].Name))]; ok {
			logos[i].KnownCompanyID = &id
		}
	}
	return logos, nil
}
