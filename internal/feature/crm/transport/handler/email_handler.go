package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// EmailUsecase は送信メール記録の操作を定義します。
type EmailUsecase interface {
	List(ctx context.Context, q usecase.ListQuery) ([]entity.Email, error)
	Get(ctx context.Context, id uint) (*entity.Email, error)
	Create(ctx context.Context, e *entity.Email) error
	Update(ctx context.Context, id uint, mutate func(*entity.Email)) (*entity.Email, error)
	Delete(ctx context.Context, id uint) error
}

// EmailHandler は /api/emails のHTTPリクエストを処理します。
type EmailHandler struct {
	uc EmailUsecase
}

// NewEmailHandler はEmailHandlerの新しいインスタンスを生成します。
func NewEmailHandler(uc EmailUsecase) *EmailHandler {
	return &EmailHandler{uc: uc}
}

func (h *EmailHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	emails, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, "list emails", err)
		return
	}
	out := make([]api.EmailResponse, len(emails))
	for i := range emails {
		out[i] = toEmailResponse(&emails[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *EmailHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get email", err)
		return
	}
	c.JSON(http.StatusOK, toEmailResponse(e))
}

// Create は POST /api/emails を処理します。
// template が指定され subject/body が省略された場合、テンプレートの値が使われます。
func (h *EmailHandler) Create(c *gin.Context) {
	var req api.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CompanyID == nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	e := &entity.Email{}
	applyEmail(e, req, true)
	if err := h.uc.Create(c.Request.Context(), e); err != nil {
		writeError(c, "create email", err)
		return
	}
	c.JSON(http.StatusCreated, toEmailResponse(e))
}

func (h *EmailHandler) Replace(c *gin.Context) { h.update(c, true) }

func (h *EmailHandler) Patch(c *gin.Context) { h.update(c, false) }

func (h *EmailHandler) update(c *gin.Context, replace bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req api.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || (replace && req.CompanyID == nil) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	e, err := h.uc.Update(c.Request.Context(), id, func(e *entity.Email) {
		applyEmail(e, req, replace)
	})
	if err != nil {
		writeError(c, "update email", err)
		return
	}
	c.JSON(http.StatusOK, toEmailResponse(e))
}

func (h *EmailHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete email", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func applyEmail(e *entity.Email, req api.EmailRequest, replace bool) {
	if req.CompanyID != nil {
		e.CompanyID = *req.CompanyID
	}
	if req.TemplateID != nil || replace {
		e.TemplateID = req.TemplateID
	}
	setIfPresent(&e.Subject, req.Subject, replace)
	setIfPresent(&e.Body, req.Body, replace)
	setIfPresent(&e.Type, req.Type, replace)
	if req.Status != nil {
		e.Status = entity.EmailStatus(*req.Status)
	} else if replace {
		e.Status = entity.EmailStatusNotResponded
	}
}

func toEmailResponse(e *entity.Email) api.EmailResponse {
	return api.EmailResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		TemplateID: e.TemplateID,
		Subject:    e.Subject,
		Body:       e.Body,
		Status:     string(e.Status),
		Type:       e.Type,
		SentAt:     e.SentAt,
	}
}
