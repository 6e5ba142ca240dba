package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

func TestPromptGorm_ListSearchesTextAndLink(t *testing.T) {
	repo := NewPromptGorm(setupTestDB(t))
	ctx := context.Background()

	for _, p := range []*entity.Prompt{
		{Text: "Ask about robotics", Type: "research", Link: "https://docs.test/robotics"},
		{Text: "Ask about energy", Type: "outreach", Link: "https://docs.test/sponsor-guide"},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"matches text", "robotics", []string{"Ask about robotics"}},
		{"matches link", "sponsor-guide", []string{"Ask about energy"}},
		{"does not match type", "outreach", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, usecase.ListQuery{Search: tt.search})
			require.NoError(t, err)
			texts := make([]string, len(got))
			for i, p := range got {
				texts[i] = p.Text
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestTemplateAndEmailGorm_SearchSubjectAndBodyOnly(t *testing.T) {
	db := setupTestDB(t)
	templates := NewTemplateGorm(db)
	emails := NewEmailGorm(db)
	companies := NewCompanyGorm(db)
	ctx := context.Background()

	require.NoError(t, templates.Create(ctx, &entity.Template{Subject: "Hello", Body: "Sponsor us", Type: "parts"}))
	c := &entity.Company{Name: "Acme", Website: "https://acme.test", Type: entity.CompanyTypeMonetary}
	require.NoError(t, companies.Create(ctx, c))
	require.NoError(t, emails.Create(ctx, &entity.Email{CompanyID: c.ID, Subject: "Intro", Body: "Sponsor us", Status: entity.EmailStatusResponded, Type: "parts"}))

	tpl, err := templates.List(ctx, usecase.ListQuery{Search: "sponsor"})
	require.NoError(t, err)
	assert.Len(t, tpl, 1)
	tpl, err = templates.List(ctx, usecase.ListQuery{Search: "parts"})
	require.NoError(t, err)
	assert.Empty(t, tpl)

	em, err := emails.List(ctx, usecase.ListQuery{Search: "intro"})
	require.NoError(t, err)
	assert.Len(t, em, 1)
	em, err = emails.List(ctx, usecase.ListQuery{Search: "responded"})
	require.NoError(t, err)
	assert.Empty(t, em)
}

func TestListOrderings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		allowed  map[string]string
		ordering string
		want     string
	}{
		{"company by type", companyOrderings, "-type", "type DESC"},
		{"company by added_at", companyOrderings, "added_at", "added_at ASC"},
		{"company industry not allowed", companyOrderings, "industry", "fallback"},
		{"template by type", templateOrderings, "type", "type ASC"},
		{"template subject not allowed", templateOrderings, "subject", "fallback"},
		{"email by type", emailOrderings, "-type", "type DESC"},
		{"email by status", emailOrderings, "status", "status ASC"},
		{"prompt by type", promptOrderings, "type", "type ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, orderClause(tt.ordering, tt.allowed, "fallback"))
		})
	}
}
