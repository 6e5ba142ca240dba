package api

import "time"

// CompanyRequest は企業の作成・更新リクエストです。
// PATCHでは指定されたフィールドのみ更新するため、すべてポインタで受け取ります。
type CompanyRequest struct {
	Name          *string `json:"name"`
	Website       *string `json:"website"`
	Email         *string `json:"email"`
	Description   *string `json:"description"`
	ContactPerson *string `json:"contact_person"`
	Industry      *string `json:"industry"`
	Location      *string `json:"location"`
	Size          *string `json:"size"`
	Type          *string `json:"type"`
}

// CompanyResponse は企業のレスポンスです。
type CompanyResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Website       string    `json:"website"`
	Email         string    `json:"email"`
	Description   string    `json:"description"`
	ContactPerson string    `json:"contact_person"`
	Industry      string    `json:"industry"`
	Location      string    `json:"location"`
	Size          string    `json:"size"`
	Type          string    `json:"type"`
	AddedAt       time.Time `json:"added_at"`
}

// CompanyDetailResponse は企業詳細のレスポンスです。送信済みメールを含みます。
type CompanyDetailResponse struct {
	CompanyResponse
	Emails      []EmailResponse `json:"emails"`
	EmailsCount int64           `json:"emails_count"`
}

// TemplateRequest はテンプレートの作成・更新リクエストです。
type TemplateRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
	Type    *string `json:"type"`
}

// TemplateResponse はテンプレートのレスポンスです。
type TemplateResponse struct {
	ID        uint      `json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailRequest はメール記録の作成・更新リクエストです。
type EmailRequest struct {
	CompanyID  *uint   `json:"company"`
	TemplateID *uint   `json:"template"`
	Subject    *string `json:"subject"`
	Body       *string `json:"body"`
	Status     *string `json:"status"`
	Type       *string `json:"type"`
}

// EmailResponse はメール記録のレスポンスです。
type EmailResponse struct {
	ID         uint      `json:"id"`
	CompanyID  uint      `json:"company"`
	TemplateID *uint     `json:"template"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	SentAt     time.Time `json:"sent_at"`
}

// PromptRequest はプロンプトの作成・更新リクエストです。
type PromptRequest struct {
	Text *string `json:"text"`
	Type *string `json:"type"`
	Link *string `json:"link"`
}

// PromptResponse はプロンプトのレスポンスです。
type PromptResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}
