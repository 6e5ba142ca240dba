package entity

// TrackResult は返信チェック1回分の結果です。
type TrackResult struct {
	// Checked は受信箱を確認した返信待ちメールの件数です。
	Checked int
	// Responded は返信が見つかり responded に更新した件数です。
	Responded int
}
