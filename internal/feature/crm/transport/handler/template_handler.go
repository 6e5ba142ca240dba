package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// TemplateUsecase はテンプレート操作のユースケースを定義します。
type TemplateUsecase interface {
	List(ctx context.Context, q usecase.ListQuery) ([]entity.Template, error)
	Get(ctx context.Context, id uint) (*entity.Template, error)
	Create(ctx context.Context, t *entity.Template) error
	Update(ctx context.Context, id uint, mutate func(*entity.Template)) (*entity.Template, error)
	Delete(ctx context.Context, id uint) error
}

// TemplateHandler は /api/templates のHTTPリクエストを処理します。
type TemplateHandler struct {
	uc TemplateUsecase
}

// NewTemplateHandler はTemplateHandlerの新しいインスタンスを生成します。
func NewTemplateHandler(uc TemplateUsecase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

func (h *TemplateHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	templates, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, "list templates", err)
		return
	}
	out := make([]api.TemplateResponse, len(templates))
	for i := range templates {
		out[i] = toTemplateResponse(&templates[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get template", err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(t))
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req api.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	t := &entity.Template{}
	applyTemplate(t, req, true)
	if err := h.uc.Create(c.Request.Context(), t); err != nil {
		writeError(c, "create template", err)
		return
	}
	c.JSON(http.StatusCreated, toTemplateResponse(t))
}

func (h *TemplateHandler) Replace(c *gin.Context) { h.update(c, true) }

func (h *TemplateHandler) Patch(c *gin.Context) { h.update(c, false) }

func (h *TemplateHandler) update(c *gin.Context, replace bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req api.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	t, err := h.uc.Update(c.Request.Context(), id, func(t *entity.Template) {
		applyTemplate(t, req, replace)
	})
	if err != nil {
		writeError(c, "update template", err)
		return
	}
	c.JSON(http.StatusOK, toTemplateResponse(t))
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete template", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func applyTemplate(t *entity.Template, req api.TemplateRequest, replace bool) {
	setIfPresent(&t.Subject, req.Subject, replace)
	setIfPresent(&t.Body, req.Body, replace)
	setIfPresent(&t.Type, req.Type, replace)
}

func toTemplateResponse(t *entity.Template) api.TemplateResponse {
	return api.TemplateResponse{
		ID:        t.ID,
		Subject:   t.Subject,
		Body:      t.Body,
		Type:      t.Type,
		CreatedAt: t.CreatedAt,
	}
}
