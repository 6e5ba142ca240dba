package entity

// EmailTemplate はテンプレートファイルから抽出した1件のメールテンプレートです。
type EmailTemplate struct {
	Title        string   `json:"title"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Intro        string   `json:"intro"`
	Middle       []string `json:"middle"`
	Closing      string   `json:"closing"`
	Placeholders []string `json:"placeholders"`
}

// TemplateAnalysis はテンプレートとLLMによる分析結果の組です。
type TemplateAnalysis struct {
	Template EmailTemplate
	Analysis string
}

// TemplateSelection は選択されたテンプレートとその理由です。
type TemplateSelection struct {
	Index     int
	Template  EmailTemplate
	Reasoning string
}
