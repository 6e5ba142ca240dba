package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// PromptUsecase はプロンプト操作のユースケースを定義します。
type PromptUsecase interface {
	List(ctx context.Context, q usecase.ListQuery) ([]entity.Prompt, error)
	Get(ctx context.Context, id uint) (*entity.Prompt, error)
	Create(ctx context.Context, p *entity.Prompt) error
	Update(ctx context.Context, id uint, mutate func(*entity.Prompt)) (*entity.Prompt, error)
	Delete(ctx context.Context, id uint) error
}

// PromptHandler は /api/prompts のHTTPリクエストを処理します。
type PromptHandler struct {
	uc PromptUsecase
}

// NewPromptHandler はPromptHandlerの新しいインスタンスを生成します。
func NewPromptHandler(uc PromptUsecase) *PromptHandler {
	return &PromptHandler{uc: uc}
}

func (h *PromptHandler) List(c *gin.Context) {
	q, ok := listQuery(c)
	if !ok {
		return
	}
	prompts, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		writeError(c, "list prompts", err)
		return
	}
	out := make([]api.PromptResponse, len(prompts))
	for i := range prompts {
		out[i] = toPromptResponse(&prompts[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *PromptHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get prompt", err)
		return
	}
	c.JSON(http.StatusOK, toPromptResponse(p))
}

func (h *PromptHandler) Create(c *gin.Context) {
	var req api.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p := &entity.Prompt{}
	applyPrompt(p, req, true)
	if err := h.uc.Create(c.Request.Context(), p); err != nil {
		writeError(c, "create prompt", err)
		return
	}
	c.JSON(http.StatusCreated, toPromptResponse(p))
}

func (h *PromptHandler) Replace(c *gin.Context) { h.update(c, true) }

func (h *PromptHandler) Patch(c *gin.Context) { h.update(c, false) }

func (h *PromptHandler) update(c *gin.Context, replace bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req api.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), id, func(p *entity.Prompt) {
		applyPrompt(p, req, replace)
	})
	if err != nil {
		writeError(c, "update prompt", err)
		return
	}
	c.JSON(http.StatusOK, toPromptResponse(p))
}

func (h *PromptHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete prompt", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func applyPrompt(p *entity.Prompt, req api.PromptRequest, replace bool) {
	setIfPresent(&p.Text, req.Text, replace)
	setIfPresent(&p.Type, req.Type, replace)
	setIfPresent(&p.Link, req.Link, replace)
}

func toPromptResponse(p *entity.Prompt) api.PromptResponse {
	return api.PromptResponse{
		ID:        p.ID,
		Text:      p.Text,
		Type:      p.Type,
		Link:      p.Link,
		CreatedAt: p.CreatedAt,
	}
}
