package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/transport/handler"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockProspector struct {
	GenerateFunc func(ctx context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error)
}

func (m *mockProspector) Generate(ctx context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error) {
	return m.GenerateFunc(ctx, c)
}

type mockDrafter struct {
	RunFunc func(ctx context.Context, company string, refresh bool) (string, error)
}

func (m *mockDrafter) Run(ctx context.Context, company string, refresh bool) (string, error) {
	return m.RunFunc(ctx, company, refresh)
}

type mockSender struct {
	SendFunc func(ctx context.Context, msg entity.OutgoingEmail, companyID *uint) error
}

func (m *mockSender) Send(ctx context.Context, msg entity.OutgoingEmail, companyID *uint) error {
	return m.SendFunc(ctx, msg, companyID)
}

func newRouter(p handler.Prospector, d handler.EmailDrafter, s handler.EmailSender) *gin.Engine {
	h := handler.NewOutreachHandler(p, d, s)
	r := gin.New()
	g := r.Group("/api/emailGenerator")
	g.POST("/generate", h.GenerateCompanies)
	g.POST("/generate_email", h.GenerateEmail)
	g.POST("/send_email", h.SendEmail)
	return r
}

func doJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOutreachHandler_GenerateCompanies(t *testing.T) {
	t.Parallel()

	t.Run("returns created companies", func(t *testing.T) {
		t.Parallel()
		var got entity.ProspectCriteria
		p := &mockProspector{GenerateFunc: func(_ context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error) {
			got = c
			return entity.ProspectResult{
				CreatedIDs: []uint{11},
				Created:    []entity.ProspectCandidate{{Name: "Tunnel Works", Website: "https://tunnel.test", Type: "Parts"}},
				Skipped:    2,
			}, nil
		}}

		w := doJSON(newRouter(p, nil, nil), "/api/emailGenerator/generate", `{"industry":"Construction","location":"Denver"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.ProspectCriteria{Industry: "Construction", Location: "Denver"}, got)

		var resp api.GenerateCompaniesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Generated 1 new companies", resp.Message)
		assert.Equal(t, 2, resp.Skipped)
		require.Len(t, resp.Companies, 1)
		assert.Equal(t, uint(11), resp.Companies[0].ID)
		assert.Equal(t, "parts", resp.Companies[0].Type)
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		t.Parallel()
		called := false
		got := entity.ProspectCriteria{Industry: "sentinel"}
		p := &mockProspector{GenerateFunc: func(_ context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error) {
			called = true
			got = c
			return entity.ProspectResult{Skipped: 3}, nil
		}}

		w := doJSON(newRouter(p, nil, nil), "/api/emailGenerator/generate", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, called)
		assert.Equal(t, entity.ProspectCriteria{}, got)
		assert.JSONEq(t, `{"message":"Generated 0 new companies","companies":[],"skipped":3}`, w.Body.String())
	})

	t.Run("maps every created company in order", func(t *testing.T) {
		t.Parallel()
		p := &mockProspector{GenerateFunc: func(context.Context, entity.ProspectCriteria) (entity.ProspectResult, error) {
			return entity.ProspectResult{
				CreatedIDs: []uint{7, 9},
				Created: []entity.ProspectCandidate{
					{Name: "  Acme Robotics ", Website: "https://acme.test", Email: "hi@acme.test", Industry: "Robotics", Location: "Austin", Type: "monetary"},
					{Name: "Bolt Supply", Website: "https://bolt.test", ContactPerson: "Jo", Size: "small", Type: " PARTS "},
				},
				Skipped: 1,
			}, nil
		}}

		w := doJSON(newRouter(p, nil, nil), "/api/emailGenerator/generate", `{"count":2}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp api.GenerateCompaniesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Generated 2 new companies", resp.Message)
		assert.Equal(t, 1, resp.Skipped)
		require.Len(t, resp.Companies, 2)

		tests := []struct {
			id                                 uint
			name, website, email, contact, typ string
		}{
			{7, "Acme Robotics", "https://acme.test", "hi@acme.test", "", "monetary"},
			{9, "Bolt Supply", "https://bolt.test", "", "Jo", "parts"},
		}
		for i, tt := range tests {
			c := resp.Companies[i]
			assert.Equal(t, tt.id, c.ID)
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.website, c.Website)
			assert.Equal(t, tt.email, c.Email)
			assert.Equal(t, tt.contact, c.ContactPerson)
			assert.Equal(t, tt.typ, c.Type)
		}
		assert.Equal(t, "Robotics", resp.Companies[0].Industry)
		assert.Equal(t, "small", resp.Companies[1].Size)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		called := false
		p := &mockProspector{GenerateFunc: func(context.Context, entity.ProspectCriteria) (entity.ProspectResult, error) {
			called = true
			return entity.ProspectResult{}, nil
		}}

		w := doJSON(newRouter(p, nil, nil), "/api/emailGenerator/generate", `{"industry":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})

	t.Run("invalid count", func(t *testing.T) {
		t.Parallel()
		w := doJSON(newRouter(&mockProspector{}, nil, nil), "/api/emailGenerator/generate", `{"count":500}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error hides details", func(t *testing.T) {
		t.Parallel()
		p := &mockProspector{GenerateFunc: func(context.Context, entity.ProspectCriteria) (entity.ProspectResult, error) {
			return entity.ProspectResult{}, errors.New("pq: connection refused")
		}}

		w := doJSON(newRouter(p, nil, nil), "/api/emailGenerator/generate", `{}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	})
}

func TestOutreachHandler_GenerateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		runErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			body:       `{"company_name":"Acme","refresh":true}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"email":"SUBJECT: Hi\n\nbody"}`,
		},
		{
			name:       "missing company name",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"company_name is required"}`,
		},
		{
			name:       "blank company name",
			body:       `{"company_name":"   "}`,
			runErr:     domain.ErrCompanyNameRequired,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"company_name is required"}`,
		},
		{
			name:       "missing club documents",
			body:       `{"company_name":"Acme"}`,
			runErr:     domain.ErrDocumentNotFound,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"failed to generate email"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := &mockDrafter{RunFunc: func(_ context.Context, company string, refresh bool) (string, error) {
				if tt.runErr != nil {
					return "", tt.runErr
				}
				assert.Equal(t, "Acme", company)
				assert.True(t, refresh)
				return "SUBJECT: Hi\n\nbody", nil
			}}

			w := doJSON(newRouter(nil, d, nil), "/api/emailGenerator/generate_email", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestOutreachHandler_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("json without attachments", func(t *testing.T) {
		t.Parallel()
		var sent entity.OutgoingEmail
		var company *uint
		s := &mockSender{SendFunc: func(_ context.Context, msg entity.OutgoingEmail, id *uint) error {
			sent, company = msg, id
			return nil
		}}

		w := doJSON(newRouter(nil, nil, s), "/api/emailGenerator/send_email",
			`{"to_email":"jane@acme.test","subject":"Partnership","message":"<p>Hi</p>","company_id":3}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, entity.OutgoingEmail{To: "jane@acme.test", Subject: "Partnership", HTML: "<p>Hi</p>"}, sent)
		require.NotNil(t, company)
		assert.Equal(t, uint(3), *company)
	})

	t.Run("multipart with attachments", func(t *testing.T) {
		t.Parallel()
		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		require.NoError(t, mw.WriteField("to_email", "jane@acme.test"))
		require.NoError(t, mw.WriteField("cc_email", "lead@cuhyperloop.test"))
		require.NoError(t, mw.WriteField("subject", "Partnership"))
		require.NoError(t, mw.WriteField("message", "<p>Hi</p>"))
		part, err := mw.CreateFormFile("attachment", "packet.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		part, err = mw.CreateFormFile("attachment2", "newsletter.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("news"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		var sent entity.OutgoingEmail
		s := &mockSender{SendFunc: func(_ context.Context, msg entity.OutgoingEmail, id *uint) error {
			sent = msg
			assert.Nil(t, id)
			return nil
		}}

		req := httptest.NewRequest(http.MethodPost, "/api/emailGenerator/send_email", body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		newRouter(nil, nil, s).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "lead@cuhyperloop.test", sent.CC)
		require.Len(t, sent.Attachments, 2)
		assert.Equal(t, "packet.pdf", sent.Attachments[0].Filename)
		assert.Equal(t, []byte("%PDF-1.4"), sent.Attachments[0].Data)
		assert.Equal(t, "newsletter.pdf", sent.Attachments[1].Filename)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		w := doJSON(newRouter(nil, nil, &mockSender{}), "/api/emailGenerator/send_email", `{"to_email":"not-an-email","subject":"s","message":"m"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("mailer not configured", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{SendFunc: func(context.Context, entity.OutgoingEmail, *uint) error {
			return domain.ErrMailerUnavailable
		}}
		w := doJSON(newRouter(nil, nil, s), "/api/emailGenerator/send_email", `{"to_email":"a@b.test","subject":"s","message":"m"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("smtp failure", func(t *testing.T) {
		t.Parallel()
		s := &mockSender{SendFunc: func(context.Context, entity.OutgoingEmail, *uint) error {
			return errors.New("535 authentication failed")
		}}
		w := doJSON(newRouter(nil, nil, s), "/api/emailGenerator/send_email", `{"to_email":"a@b.test","subject":"s","message":"m"}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"failed to send email"}`, w.Body.String())
	})
}
