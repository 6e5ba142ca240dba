package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// CompanyUsecase は企業操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type CompanyUsecase interface {
	List(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error)
	Get(ctx context.Context, id uint) (*usecase.CompanyDetail, error)
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, id uint, mutate func(*entity.Company)) (*entity.Company, error)
	Delete(ctx context.Context, id uint) error
	Emails(ctx context.Context, id uint) ([]entity.Email, error)
}

// CompanyHandler は /api/companies のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List は GET /api/companies を処理します。
func (h *CompanyHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	companies, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, "list companies", err)
		return
	}
	out := make([]api.CompanyResponse, len(companies))
	for i := range companies {
		out[i] = ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /api/companies/:id を処理します。送信済みメールと件数を含めて返します。
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get company", err)
		return
	}
	emails := make([]api.EmailResponse, len(detail.Emails))
	for i := range detail.Emails {
		emails[i] = toEmailResponse(&detail.Emails[i])
	}
	c.JSON(http.StatusOK, api.CompanyDetailResponse{
		CompanyResponse: ToCompanyResponse(&detail.Company),
		Emails:          emails,
		EmailsCount:     detail.EmailsCount,
	})
}

// Create は POST /api/companies を処理します。
func (h *CompanyHandler) Create(c *gin.Context) {
	var req api.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company := &entity.Company{}
	applyCompany(company, req, true)
	if err := h.uc.Create(c.Request.Context(), company); err != nil {
		writeError(c, "create company", err)
		return
	}
	c.JSON(http.StatusCreated, ToCompanyResponse(company))
}

// Replace は PUT /api/companies/:id を処理します。
func (h *CompanyHandler) Replace(c *gin.Context) { h.update(c, true) }

// Patch は PATCH /api/companies/:id を処理します。
func (h *CompanyHandler) Patch(c *gin.Context) { h.update(c, false) }

func (h *CompanyHandler) update(c *gin.Context, replace bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req api.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	company, err := h.uc.Update(c.Request.Context(), id, func(co *entity.Company) {
		applyCompany(co, req, replace)
	})
	if err != nil {
		writeError(c, "update company", err)
		return
	}
	c.JSON(http.StatusOK, ToCompanyResponse(company))
}

// Delete は DELETE /api/companies/:id を処理します。
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete company", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Emails は GET /api/companies/:id/emails を処理します。
func (h *CompanyHandler) Emails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	emails, err := h.uc.Emails(c.Request.Context(), id)
	if err != nil {
		writeError(c, "list company emails", err)
		return
	}
	out := make([]api.EmailResponse, len(emails))
	for i := range emails {
		out[i] = toEmailResponse(&emails[i])
	}
	c.JSON(http.StatusOK, out)
}

func applyCompany(co *entity.Company, req api.CompanyRequest, replace bool) {
	setIfPresent(&co.Name, req.Name, replace)
	setIfPresent(&co.Website, req.Website, replace)
	setIfPresent(&co.Description, req.Description, replace)
	setIfPresent(&co.ContactPerson, req.ContactPerson, replace)
	setIfPresent(&co.Industry, req.Industry, replace)
	setIfPresent(&co.Location, req.Location, replace)
	setIfPresent(&co.Size, req.Size, replace)
	if req.Email != nil || replace {
		email := ""
		if req.Email != nil {
			email = *req.Email
		}
		co.SetEmail(email)
	}
	if req.Type != nil {
		co.Type = entity.CompanyType(*req.Type)
	} else if replace {
		co.Type = ""
	}
}

// ToCompanyResponse はエンティティをレスポンスに変換します。outreachフィーチャーからも利用されます。
func ToCompanyResponse(co *entity.Company) api.CompanyResponse {
	return api.CompanyResponse{
		ID:            co.ID,
		Name:          co.Name,
		Website:       co.Website,
		Email:         co.EmailAddress(),
		Description:   co.Description,
		ContactPerson: co.ContactPerson,
		Industry:      co.Industry,
		Location:      co.Location,
		Size:          co.Size,
		Type:          string(co.Type),
		AddedAt:       co.AddedAt,
	}
}
