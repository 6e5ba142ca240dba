// Package vision はGoogle Cloud Vision APIを使用したロゴ検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"sort"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"outreach_backend/internal/feature/logodetection/domain/entity"
	"outreach_backend/internal/feature/logodetection/usecase"
)

// DefaultMinScore はこれ未満の信頼度のロゴを捨てるしきい値です。
const DefaultMinScore float32 = 0.5

// VisionLogoDetector はGoogle Cloud Vision APIを使用してロゴを検出します。
type VisionLogoDetector struct {
	client   *gvision.ImageAnnotatorClient
	minScore float32
}

// VisionLogoDetectorがLogoDetectorを実装していることをコンパイル時に検証します。
var _ usecase.LogoDetector = (*VisionLogoDetector)(nil)

// NewVisionLogoDetector はADC（または opts）を使用してVisionLogoDetectorの新しいインスタンスを生成します。
func NewVisionLogoDetector(ctx context.Context, opts ...option.ClientOption) (*VisionLogoDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionLogoDetector{client: client, minScore: DefaultMinScore}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionLogoDetector) Close() error {
	return v.client.Close()
}

// DetectLogos は画像バイト列からロゴを検出します。
func (v *VisionLogoDetector) DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LOGO_DETECTION, MaxResults: 10},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}

	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	return toLogos(resp.Responses[0].LogoAnnotations, v.minScore), nil
}

// toLogos はアノテーションを信頼度の高い順に変換します。
// minScore 未満のものと、同名（大文字小文字を区別しない）の2件目以降は除外します。
func toLogos(annotations []*visionpb.EntityAnnotation, minScore float32) []entity.DetectedLogo {
	seen := make(map[string]struct{}, len(annotations))
	logos := make([]entity.DetectedLogo, 0, len(annotations))

	sorted := append([]*visionpb.EntityAnnotation(nil), annotations...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].GetScore() > sorted[j].GetScore() })

	for _, a := range sorted {
		name := strings.TrimSpace(a.GetDescription())
		if name == "" || a.GetScore() < minScore {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		logos = append(logos, entity.DetectedLogo{Name: name, Confidence: a.GetScore()})
	}
	return logos
}
