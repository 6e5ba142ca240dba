package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/usecase"
)

func testIdentity() entity.SenderIdentity {
	return entity.SenderIdentity{
		Name:           "Ana",
		Role:           "Outreach Lead",
		Club:           "Rocket Club",
		Intro:          "My name is Ana, and I am the Outreach Lead for Rocket Club",
		IntroParagraph: "My name is Ana, and I am the Outreach Lead for Rocket Club, a student rocketry team.",
		DefaultSubject: "Partnership with Rocket Club",
	}
}

func TestEnsureIntro(t *testing.T) {
	t.Parallel()

	id := testIdentity()
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "intro present is unchanged",
			email: "SUBJECT: Hi\n\nHello Acme,\n\n" + id.Intro + ". We build rockets.",
			want:  "SUBJECT: Hi\n\nHello Acme,\n\n" + id.Intro + ". We build rockets.",
		},
		{
			name:  "greeting kept and rest of body preserved",
			email: "SUBJECT: Fueling the future\n\nHello Acme Team, I'm writing from a club.\nWe need sponsors.\n\nThanks,\nAna",
			want:  "SUBJECT: Fueling the future\n\nHello Acme Team,\n\n" + id.IntroParagraph + "\nWe need sponsors.\n\nThanks,\nAna",
		},
		{
			name:  "missing subject and greeting use defaults",
			email: "Dear sponsor, please help.\nSecond line.",
			want:  "SUBJECT: Partnership with Rocket Club\n\nHello [company name],\n\n" + id.IntroParagraph + "\nSecond line.",
		},
		{
			name:  "bracketed greeting is kept",
			email: "SUBJECT: S\n\nHi [company name],\nBody.",
			want:  "SUBJECT: S\n\nHi [company name],\n\n" + id.IntroParagraph + "\nBody.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := usecase.EnsureIntro(tt.email, id)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, got, id.Intro)
		})
	}
}

func TestPrimaryRecipient(t *testing.T) {
	t.Parallel()

	assert.Nil(t, usecase.PrimaryRecipient(nil))

	profiles := []entity.ContactProfile{
		{Name: "Jane Doe", Role: "Decision Maker"},
		{Name: "Marketing Director", Role: "Marketing Director"},
	}
	got := usecase.PrimaryRecipient(profiles)
	require.NotNil(t, got)
	assert.Equal(t, "Marketing Director", got.Name)

	got = usecase.PrimaryRecipient(profiles[:1])
	require.NotNil(t, got)
	assert.Equal(t, "Jane Doe", got.Name)
}

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.Identity = testIdentity()
	sel := entity.TemplateSelection{
		Template:  entity.EmailTemplate{Title: "Monetary", Subject: "Support us", Body: "Body text"},
		Reasoning: "best fit",
	}
	club := entity.ClubBriefing{Facts: []entity.ClubFact{{Question: "What?", Answer: "Rockets."}}}
	intel := entity.RelationshipIntelligence{
		DecisionMakers: []entity.ContactProfile{{Name: "Head of CSR", Role: "Head of CSR", CommunicationStyle: "brief and warm"}},
		Partnership:    entity.PartnershipAnalysis{ValuePropositions: "VP list"},
		Culture:        entity.CulturalAssessment{Recommendations: "be concise"},
	}

	t.Run("generated email gets the intro", func(t *testing.T) {
		t.Parallel()
		llm := &mockLLM{GenerateFunc: func(context.Context, string, usecase.Sampling) (string, error) {
			return "SUBJECT: Launch with us\n\nHello Acme,\nWe need support.", nil
		}}
		got, err := usecase.NewComposer(llm, s).Compose(context.Background(), sel, club, "Acme makes engines", intel)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "SUBJECT: Launch with us\n\nHello Acme,\n\n"+s.Identity.IntroParagraph))
		require.Len(t, llm.Prompts, 1)
		prompt := llm.Prompts[0]
		assert.Contains(t, prompt, "INTENDED PRIMARY RECIPIENT:\nHead of CSR")
		assert.Contains(t, prompt, "brief and warm")
		assert.Contains(t, prompt, "QUESTION: What?\nANSWER: Rockets.")
		assert.Contains(t, prompt, "TEMPLATE BODY:\nBody text")
	})

	t.Run("llm failure returns fallback email", func(t *testing.T) {
		t.Parallel()
		llm := &mockLLM{GenerateFunc: func(context.Context, string, usecase.Sampling) (string, error) {
			return "", ErrAPI
		}}
		got, err := usecase.NewComposer(llm, s).Compose(context.Background(), sel, club, "info", entity.RelationshipIntelligence{})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "SUBJECT: Partnership Opportunity with Rocket Club\n\nHello [company name],"))
		assert.Contains(t, got, s.Identity.IntroParagraph)
		assert.Contains(t, got, "due to an error in generation: api error")
	})

	t.Run("no contacts uses generic recipient", func(t *testing.T) {
		t.Parallel()
		llm := &mockLLM{GenerateFunc: func(context.Context, string, usecase.Sampling) (string, error) {
			return s.Identity.Intro, nil
		}}
		_, err := usecase.NewComposer(llm, s).Compose(context.Background(), sel, club, "info", entity.RelationshipIntelligence{})

		require.NoError(t, err)
		assert.Contains(t, llm.Prompts[0], "Unknown - use generic greeting")
		assert.Contains(t, llm.Prompts[0], "Use professional, clear communication")
	})
}
