// Package domain はlogodetectionフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrEmptyImage は画像データが空であることを示します。
	ErrEmptyImage = errors.New("image data is empty")
	// ErrImageTooLarge は画像が上限サイズを超えていることを示します。
	ErrImageTooLarge = errors.New("image size exceeds maximum")
)
