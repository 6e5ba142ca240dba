package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain"
	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/transport/handler"
	"outreach_backend/internal/feature/crm/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockCompanyUsecase はCompanyUsecaseインターフェースのモック実装です。
type mockCompanyUsecase struct {
	ListFunc   func(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error)
	GetFunc    func(ctx context.Context, id uint) (*usecase.CompanyDetail, error)
	CreateFunc func(ctx context.Context, c *entity.Company) error
	UpdateFunc func(ctx context.Context, id uint, mutate func(*entity.Company)) (*entity.Company, error)
	DeleteFunc func(ctx context.Context, id uint) error
}

func (m *mockCompanyUsecase) List(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockCompanyUsecase) Get(ctx context.Context, id uint) (*usecase.CompanyDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, usecase.ErrCompanyNotFound
}

func (m *mockCompanyUsecase) Create(ctx context.Context, c *entity.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCompanyUsecase) Update(ctx context.Context, id uint, mutate func(*entity.Company)) (*entity.Company, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, mutate)
	}
	return nil, usecase.ErrCompanyNotFound
}

func (m *mockCompanyUsecase) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockCompanyUsecase) Emails(ctx context.Context, id uint) ([]entity.Email, error) {
	return nil, nil
}

func setupCompanyRouter(uc handler.CompanyUsecase) *gin.Engine {
	h := handler.NewCompanyHandler(uc)
	r := gin.New()
	r.GET("/companies", h.List)
	r.POST("/companies", h.Create)
	r.GET("/companies/:id", h.Get)
	r.PATCH("/companies/:id", h.Patch)
	r.DELETE("/companies/:id", h.Delete)
	return r
}

// TestCompanyHandler_Create はステータスコードのマッピングを検証します。
func TestCompanyHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantError  string
	}{
		{"created", `{"name":"Acme","website":"https://acme.test"}`, nil, http.StatusCreated, ""},
		{"validation error", `{"name":"Acme"}`, domain.ErrContactRequired, http.StatusBadRequest, domain.ErrContactRequired.Error()},
		{"duplicate", `{"name":"Acme","email":"a@acme.test"}`, usecase.ErrDuplicateCompany, http.StatusConflict, usecase.ErrDuplicateCompany.Error()},
		{"internal error is not leaked", `{"name":"Acme","email":"a@acme.test"}`, assert.AnError, http.StatusInternalServerError, "internal server error"},
		{"malformed json", `{"name":`, nil, http.StatusBadRequest, "invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockCompanyUsecase{
				CreateFunc: func(ctx context.Context, c *entity.Company) error {
					if tt.createErr != nil {
						return tt.createErr
					}
					c.ID = 10
					return nil
				},
			}
			r := setupCompanyRouter(uc)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var resp api.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

// TestCompanyHandler_ListPassesQuery は検索語と並び順がユースケースに渡されることを検証します。
func TestCompanyHandler_ListPassesQuery(t *testing.T) {
	t.Parallel()

	var got usecase.ListQuery
	uc := &mockCompanyUsecase{
		ListFunc: func(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error) {
			got = q
			email := "x@y.test"
			return []entity.Company{{ID: 1, Name: "Acme", Email: &email, Type: entity.CompanyTypeParts}}, nil
		},
	}
	r := setupCompanyRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/companies?search=robot&ordering=-name", nil)

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.ListQuery{Search: "robot", Ordering: "-name"}, got)

	var resp []api.CompanyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "x@y.test", resp[0].Email)
	assert.Equal(t, "parts", resp[0].Type)
}

// TestCompanyHandler_GetDetail は企業詳細にメールと件数が含まれることを検証します。
func TestCompanyHandler_GetDetail(t *testing.T) {
	t.Parallel()

	uc := &mockCompanyUsecase{
		GetFunc: func(ctx context.Context, id uint) (*usecase.CompanyDetail, error) {
			return &usecase.CompanyDetail{
				Company:     entity.Company{ID: id, Name: "Acme"},
				Emails:      []entity.Email{{ID: 5, CompanyID: id, Status: entity.EmailStatusResponded}},
				EmailsCount: 1,
			}, nil
		},
	}
	r := setupCompanyRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.CompanyDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.ID)
	assert.Equal(t, int64(1), resp.EmailsCount)
	require.Len(t, resp.Emails, 1)
	assert.Equal(t, "responded", resp.Emails[0].Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCompanyHandler_PatchOnlyTouchesGivenFields はPATCHで指定されたフィールドのみ更新されることを検証します。
func TestCompanyHandler_PatchOnlyTouchesGivenFields(t *testing.T) {
	t.Parallel()

	email := "keep@acme.test"
	existing := entity.Company{ID: 2, Name: "Acme", Email: &email, Industry: "Mining", Type: entity.CompanyTypeMonetary}
	uc := &mockCompanyUsecase{
		UpdateFunc: func(ctx context.Context, id uint, mutate func(*entity.Company)) (*entity.Company, error) {
			c := existing
			mutate(&c)
			return &c, nil
		},
	}
	r := setupCompanyRouter(uc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/companies/2", strings.NewReader(`{"industry":"Tunneling"}`))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp api.CompanyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tunneling", resp.Industry)
	assert.Equal(t, "keep@acme.test", resp.Email)
	assert.Equal(t, "Acme", resp.Name)
}

// TestCompanyHandler_DeleteNotFound は存在しない企業の削除で404が返ることを検証します。
func TestCompanyHandler_DeleteNotFound(t *testing.T) {
	t.Parallel()

	uc := &mockCompanyUsecase{
		DeleteFunc: func(ctx context.Context, id uint) error { return usecase.ErrCompanyNotFound },
	}
	r := setupCompanyRouter(uc)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/companies/9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
