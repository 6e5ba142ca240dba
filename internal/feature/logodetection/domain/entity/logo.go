// Package entity はlogodetectionフィーチャーのドメインモデルを定義します。
package entity

// DetectedLogo は画像から検出されたロゴを表します。
type DetectedLogo struct {
	Name       string  // 検出された企業名
	Confidence float32 // 信頼度スコア（0.0 ~ 1.0）
	// KnownCompanyID はCRMに同名（大文字小文字を区別しない）の企業がある場合のIDです。
	KnownCompanyID *uint
}
