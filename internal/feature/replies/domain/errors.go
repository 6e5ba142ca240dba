// Package domain はrepliesフィーチャーのドメインエラーを定義します。
package domain

import "errors"

// ErrInboxNotConfigured はIMAP設定がなく受信箱を確認できないことを示します。
var ErrInboxNotConfigured = errors.New("inbox is not configured")
