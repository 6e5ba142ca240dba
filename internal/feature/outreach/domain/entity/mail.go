package entity

// Attachment はメールの添付ファイルです。
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OutgoingEmail は送信するHTMLメールです。
type OutgoingEmail struct {
	To          string
	CC          string
	Subject     string
	HTML        string
	Attachments []Attachment
}
