package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

// ClubBriefer はクラブ資料に質問を投げ、スポンサー向けの情報を抽出します。
type ClubBriefer struct {
	loader   KnowledgeLoader
	llm      LLM
	pacer    Pacer
	settings Settings
}

// NewClubBriefer はClubBrieferの新しいインスタンスを生成します。pacer は質問間隔を制御します。
func NewClubBriefer(loader KnowledgeLoader, llm LLM, pacer Pacer, s Settings) *ClubBriefer {
	return &ClubBriefer{loader: loader, llm: llm, pacer: pacer, settings: s.withDefaults()}
}

// Brief は資料を読み込み、設定された質問に順番に回答します。
// 資料が読み込めない場合はエラーを返します。個々の質問の失敗は回答文に記録されます。
func (b *ClubBriefer) Brief(ctx context.Context, paths ...string) (entity.ClubBriefing, error) {
	kb, err := b.loader.Load(ctx, paths...)
	if err != nil {
		return entity.ClubBriefing{}, fmt.Errorf("load club documents: %w", err)
	}

	questions := b.settings.ClubQuestions
	facts := make([]entity.ClubFact, 0, len(questions))
	for i, q := range questions {
		if err := b.pacer.Pace(ctx); err != nil {
			return entity.ClubBriefing{}, err
		}
		answer, err := b.answer(ctx, kb, q)
		if err != nil {
			if ctx.Err() != nil {
				return entity.ClubBriefing{}, ctx.Err()
			}
			slog.Warn("club question failed", "question", q, "error", err)
			answer = fmt.Sprintf("Information unavailable due to API error: %v", err)
			if err := b.pacer.Recover(ctx); err != nil {
				return entity.ClubBriefing{}, err
			}
		} else {
			slog.Debug("club question answered", "n", i+1, "of", len(questions), "chars", len(answer))
		}
		facts = append(facts, entity.ClubFact{Question: q, Answer: answer})
	}
	slog.Info("club briefing complete", "questions", len(facts))
	return entity.ClubBriefing{Facts: facts}, nil
}

func (b *ClubBriefer) answer(ctx context.Context, kb KnowledgeBase, question string) (string, error) {
	chunks, err := kb.Retrieve(ctx, question, b.settings.RetrievalK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	prompt, err := render("question", map[string]any{
		"Context":  strings.Join(chunks, "\n\n"),
		"Question": question,
	})
	if err != nil {
		return "", err
	}
	return b.llm.Generate(ctx, prompt, b.settings.Sampling)
}
