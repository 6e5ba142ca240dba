package entity

import "strings"

// ClubFact はクラブ資料に対する質問と回答の組です。
type ClubFact struct {
	Question string
	Answer   string
}

// ClubBriefing はクラブ資料から抽出した情報です。質問の順序を保持します。
type ClubBriefing struct {
	Facts []ClubFact
}

// Format はプロンプトに埋め込むための文字列を返します。qLabel/aLabelは "Q"/"A" などの見出しです。
func (b ClubBriefing) Format(qLabel, aLabel string) string {
	parts := make([]string, 0, len(b.Facts))
	for _, f := range b.Facts {
		parts = append(parts, qLabel+": "+f.Question+"\n"+aLabel+": "+f.Answer)
	}
	return strings.Join(parts, "\n\n")
}

// SenderIdentity は送信者（クラブ担当者）の情報です。テンプレートの置換や導入文の強制に使われます。
type SenderIdentity struct {
	Name           string `yaml:"name"`
	Role           string `yaml:"role"`
	Club           string `yaml:"club"`
	Affiliation    string `yaml:"affiliation"`
	Intro          string `yaml:"intro"`
	IntroParagraph string `yaml:"intro_paragraph"`
	DefaultSubject string `yaml:"default_subject"`
	Pitch          string `yaml:"pitch"`
}
