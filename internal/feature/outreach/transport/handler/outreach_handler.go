// Package handler はoutreachフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
)

// MaxAttachmentBytes は添付ファイルの合計サイズの上限（25MB）です。
const MaxAttachmentBytes = 25 << 20

// attachmentFields は添付ファイルを受け付けるフォームフィールドです。
var attachmentFields = []string{"attachments", "attachment", "attachment2"}

// Prospector は候補企業を生成して登録します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Prospector interface {
	Generate(ctx context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error)
}

// EmailDrafter は企業名からスポンサーシップメールを生成します。
type EmailDrafter interface {
	Run(ctx context.Context, company string, refresh bool) (string, error)
}

// EmailSender はメールを送信します。
type EmailSender interface {
	Send(ctx context.Context, msg entity.OutgoingEmail, companyID *uint) error
}

// OutreachHandler は /api/emailGenerator のHTTPリクエストを処理します。
type OutreachHandler struct {
	prospector Prospector
	drafter    EmailDrafter
	sender     EmailSender
}

// NewOutreachHandler はOutreachHandlerの新しいインスタンスを生成します。
func NewOutreachHandler(p Prospector, d EmailDrafter, s EmailSender) *OutreachHandler {
	return &OutreachHandler{prospector: p, drafter: d, sender: s}
}

// GenerateCompanies は条件に合うスポンサー候補企業を生成してCRMに登録します。
//
// エンドポイント: POST /api/emailGenerator/generate
func (h *OutreachHandler) GenerateCompanies(c *gin.Context) {
	var req api.GenerateCompaniesRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Warn("候補企業生成リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
			return
		}
	}

	res, err := h.prospector.Generate(c.Request.Context(), entity.ProspectCriteria{
		Industry: req.Industry,
		Size:     req.Size,
		Sector:   req.Sector,
		Location: req.Location,
		Vibe:     req.Vibe,
		Details:  req.Details,
		Count:    req.Count,
	})
	if err != nil {
		slog.Error("候補企業の生成に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	companies := make([]api.CompanyResponse, len(res.Created))
	for i, cand := range res.Created {
		companies[i] = toCompanyResponse(res.CreatedIDs[i], cand)
	}
	c.JSON(http.StatusOK, api.GenerateCompaniesResponse{
		Message:   fmt.Sprintf("Generated %d new companies", len(companies)),
		Companies: companies,
		Skipped:   res.Skipped,
	})
}

// GenerateEmail は企業を調査し、スポンサーシップ依頼メールを生成します。
//
// エンドポイント: POST /api/emailGenerator/generate_email
func (h *OutreachHandler) GenerateEmail(c *gin.Context) {
	var req api.GenerateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company_name is required"})
		return
	}

	email, err := h.drafter.Run(c.Request.Context(), req.CompanyName, req.Refresh)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.GenerateEmailResponse{Email: email})
	case errors.Is(err, domain.ErrCompanyNameRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company_name is required"})
	default:
		slog.Error("メール生成に失敗", "error", err, "company", req.CompanyName)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to generate email"})
	}
}

// SendEmail はHTMLメールを送信します。company_id が指定されていれば送信記録を残します。
//
// エンドポイント: POST /api/emailGenerator/send_email
// Content-Type: multipart/form-data（添付ファイルあり）または application/json
func (h *OutreachHandler) SendEmail(c *gin.Context) {
	var req api.SendEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("メール送信リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "to_email, subject and message are required"})
		return
	}

	attachments, err := readAttachments(c)
	if err != nil {
		slog.Warn("添付ファイルの読み込みに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid attachments"})
		return
	}

	msg := entity.OutgoingEmail{
		To:          req.ToEmail,
		CC:          req.CCEmail,
		Subject:     req.Subject,
		HTML:        req.Message,
		Attachments: attachments,
	}
	err = h.sender.Send(c.Request.Context(), msg, req.CompanyID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email sent successfully"})
	case errors.Is(err, domain.ErrMailerUnavailable):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "email sending is not configured"})
	default:
		slog.Error("メール送信に失敗", "error", err, "to", req.ToEmail)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to send email"})
	}
}

// readAttachments はマルチパートフォームの添付ファイルを読み込みます。JSONリクエストでは空です。
func readAttachments(c *gin.Context) ([]entity.Attachment, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var (
		out   []entity.Attachment
		total int64
	)
	for _, field := range attachmentFields {
		for _, fh := range form.File[field] {
			total += fh.Size
			if total > MaxAttachmentBytes {
				return nil, fmt.Errorf("attachments exceed %d bytes", MaxAttachmentBytes)
			}
			a, err := readAttachment(fh)
			if err != nil {
				return nil, err
			}
			out = append(out, a)
		}
	}
	return out, nil
}

func readAttachment(fh *multipart.FileHeader) (entity.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return entity.Attachment{}, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("添付ファイルのクローズに失敗", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return entity.Attachment{}, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return entity.Attachment{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}

func toCompanyResponse(id uint, cand entity.ProspectCandidate) api.CompanyResponse {
	typ := "monetary"
	if strings.EqualFold(strings.TrimSpace(cand.Type), "parts") {
		typ = "parts"
	}
	return api.CompanyResponse{
		ID:            id,
		Name:          strings.TrimSpace(cand.Name),
		Website:       cand.Website,
		Email:         cand.Email,
		Description:   cand.Description,
		ContactPerson: cand.ContactPerson,
		Industry:      cand.Industry,
		Location:      cand.Location,
		Size:          cand.Size,
		Type:          typ,
	}
}
