// Package domain はcrmフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// Domain errors for CRM records.
var (
	// ErrNameRequired は企業名が空であることを示します。
	ErrNameRequired = errors.New("name is required")

	// ErrContactRequired はメールアドレスとWebサイトのどちらも指定されていないことを示します。
	ErrContactRequired = errors.New("either email or website must be provided")

	// ErrInvalidCompanyType は企業タイプが monetary / parts 以外であることを示します。
	ErrInvalidCompanyType = errors.New("company type must be monetary or parts")

	// ErrInvalidEmailStatus はメールのステータスが不正であることを示します。
	ErrInvalidEmailStatus = errors.New("status must be responded or not_responded")

	// ErrInvalidEmailAddress はメールアドレスの形式が不正であることを示します。
	ErrInvalidEmailAddress = errors.New("invalid email address")

	// ErrPromptTextRequired はプロンプト本文が空であることを示します。
	ErrPromptTextRequired = errors.New("prompt text is required")
)
