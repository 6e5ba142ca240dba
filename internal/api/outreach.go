package api

// GenerateCompaniesRequest は候補企業生成リクエストです。すべて任意です。
type GenerateCompaniesRequest struct {
	Industry string `json:"industry"`
	Size     string `json:"size"`
	Sector   string `json:"sector"`
	Location string `json:"location"`
	Vibe     string `json:"vibe"`
	Details  string `json:"details"`
	Count    int    `json:"count" binding:"omitempty,min=1,max=50"`
}

// GenerateCompaniesResponse は候補企業生成の結果です。
type GenerateCompaniesResponse struct {
	Message   string            `json:"message"`
	Companies []CompanyResponse `json:"companies"`
	Skipped   int               `json:"skipped"`
}

// GenerateEmailRequest はスポンサーシップメール生成リクエストです。
type GenerateEmailRequest struct {
	CompanyName string `json:"company_name" binding:"required,max=200"`
	Refresh     bool   `json:"refresh"`
}

// GenerateEmailResponse は生成されたメール本文です。
type GenerateEmailResponse struct {
	Email string `json:"email"`
}

// SendEmailRequest はメール送信リクエストです（multipart/form-data または JSON）。
type SendEmailRequest struct {
	ToEmail   string `form:"to_email" json:"to_email" binding:"required,email"`
	CCEmail   string `form:"cc_email" json:"cc_email" binding:"omitempty,email"`
	Subject   string `form:"subject" json:"subject" binding:"required"`
	Message   string `form:"message" json:"message" binding:"required"`
	CompanyID *uint  `form:"company_id" json:"company_id"`
}

// TrackRepliesResponse は返信チェックの結果です。
type TrackRepliesResponse struct {
	Checked   int `json:"checked"`
	Responded int `json:"responded"`
}

// DetectedLogoResponse は検出されたロゴと、一致したCRM上の企業IDです。
type DetectedLogoResponse struct {
	Name           string  `json:"name"`
	Confidence     float32 `json:"confidence"`
	KnownCompanyID *uint   `json:"known_company_id,omitempty"`
}
