package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

var (
	subjectLine       = regexp.MustCompile(`(?m)^SUBJECT:\s*(.*?)$`)
	subjectLineStrip  = regexp.MustCompile(`(?m)^SUBJECT:\s*.*?$\n+`)
	greetingLine      = regexp.MustCompile(`^(?:Hi|Hello)\s+[\p{L}\p{N}_\s\[\]]+,`)
	authoritativeRole = []string{"director", "manager", "head"}
)

// Composer は選択されたテンプレートと収集した情報からメール本文を生成します。
type Composer struct {
	llm      LLM
	settings Settings
}

// NewComposer はComposerの新しいインスタンスを生成します。
func NewComposer(llm LLM, s Settings) *Composer {
	return &Composer{llm: llm, settings: s.withDefaults()}
}

// Compose は "SUBJECT: ...\n\n本文" 形式のメールを返します。
// 生成結果に必須の導入文がなければ挿入します。LLMが失敗した場合は定型のメールを返します。
func (c *Composer) Compose(ctx context.Context, sel entity.TemplateSelection, club entity.ClubBriefing, companyInfo string, intel entity.RelationshipIntelligence) (string, error) {
	recipient := "Unknown - use generic greeting"
	style := ""
	if p := PrimaryRecipient(intel.DecisionMakers); p != nil {
		recipient = p.Name
		style = p.CommunicationStyle
	}
	if style == "" {
		style = "Use professional, clear communication"
	}

	id := c.settings.Identity
	prompt, err := render("compose", map[string]any{
		"Club":               id.Club,
		"Intro":              id.Intro,
		"Template":           sel.Template,
		"Reasoning":          sel.Reasoning,
		"CompanyInfo":        companyInfo,
		"Recipient":          recipient,
		"CommunicationStyle": style,
		"ValuePropositions":  intel.Partnership.ValuePropositions,
		"Recommendations":    intel.Culture.Recommendations,
		"ClubInfo":           club.Format("QUESTION", "ANSWER"),
	})
	if err != nil {
		return "", fmt.Errorf("render compose prompt: %w", err)
	}

	email, err := c.llm.Generate(ctx, prompt, c.settings.Sampling)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("email generation failed, using fallback email", "error", err)
		return FallbackEmail(id, err), nil
	}
	return EnsureIntro(email, id), nil
}

// PrimaryRecipient は役職に director, manager, head を含む最初の人物を返します。
// 該当者がいなければ先頭の人物、誰もいなければ nil です。
func PrimaryRecipient(profiles []entity.ContactProfile) *entity.ContactProfile {
	for i := range profiles {
		role := strings.ToLower(profiles[i].Role)
		for _, r := range authoritativeRole {
			if strings.Contains(role, r) {
				return &profiles[i]
			}
		}
	}
	if len(profiles) > 0 {
		return &profiles[0]
	}
	return nil
}

// EnsureIntro はメールに送信者の導入文が含まれていることを保証します。
//
// 導入文がない場合、件名行を取り出し、本文の1行目を挨拶と導入段落に置き換えます。
// 挨拶は既存の "Hi ..., " / "Hello ...," を残し、なければ "Hello [company name]," を使います。
// 2行目以降はそのまま保持されます。
func EnsureIntro(email string, id entity.SenderIdentity) string {
	if id.Intro == "" || strings.Contains(email, id.Intro) {
		return email
	}
	slog.Info("inserting required introduction into generated email")

	subject := id.DefaultSubject
	if m := subjectLine.FindStringSubmatch(email); m != nil {
		subject = strings.TrimSpace(m[1])
	}

	body := email
	if loc := subjectLineStrip.FindStringIndex(body); loc != nil {
		body = body[:loc[0]] + body[loc[1]:]
	}
	body = strings.TrimSpace(body)

	lines := strings.Split(body, "\n")
	greeting := "Hello [company name],"
	if g := greetingLine.FindString(lines[0]); g != "" {
		greeting = g
	}
	lines[0] = greeting + "\n\n" + id.IntroParagraph

	return "SUBJECT: " + subject + "\n\n" + strings.Join(lines, "\n")
}

// FallbackEmail はLLMが利用できない場合の定型メールです。
func FallbackEmail(id entity.SenderIdentity, cause error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SUBJECT: Partnership Opportunity with %s\n\n", id.Club)
	b.WriteString("Hello [company name],\n\n")
	b.WriteString(id.IntroParagraph + "\n\n")
	b.WriteString("We believe there could be a valuable partnership opportunity between our organizations and would appreciate the chance to discuss this further.")
	if id.Pitch != "" {
		b.WriteString(" " + id.Pitch)
	}
	b.WriteString("\n\nCould we schedule a brief call this week?\n\n")
	fmt.Fprintf(&b, "Thank you,\n%s\n%s Team", id.Name, id.Club)
	if cause != nil {
		fmt.Fprintf(&b, "\n\n[Note: This is a simplified fallback email due to an error in generation: %v]", cause)
	}
	return b.String()
}
