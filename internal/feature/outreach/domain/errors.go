// Package domain はoutreachフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrArtifactNotFound はキャッシュにアーティファクトが存在しないことを示します。
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrDocumentNotFound はクラブ資料やテンプレートファイルが見つからないことを示します。
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNoTemplates はテンプレートファイルから1件もテンプレートを抽出できなかったことを示します。
	ErrNoTemplates = errors.New("no templates parsed")
	// ErrCompanyNameRequired は企業名が空であることを示します。
	ErrCompanyNameRequired = errors.New("company name is required")
	// ErrDuplicateProspect は候補企業が既に登録済みであることを示します。
	ErrDuplicateProspect = errors.New("prospect already exists")
	// ErrInvalidProspect は候補企業が企業の検証ルールを満たさないことを示します。
	ErrInvalidProspect = errors.New("invalid prospect")
	// ErrMailerUnavailable はSMTP設定がなくメール送信できないことを示します。
	ErrMailerUnavailable = errors.New("mailer is not configured")
)
