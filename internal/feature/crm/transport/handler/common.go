// Package handler はcrmフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/crm/domain"
	"outreach_backend/internal/feature/crm/usecase"
)

// parseID はパスパラメータ :id を読み取ります。不正な場合は400を返して false を返します。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// listQuery は ?search=&ordering= を usecase.ListQuery に変換します。
func listQuery(c *gin.Context) (usecase.ListQuery, bool) {
	p, err := api.BindListParams(c.Request.URL.Query())
	if err != nil {
		slog.Warn("invalid list parameters", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid query parameters"})
		return usecase.ListQuery{}, false
	}
	return usecase.ListQuery{Search: p.SearchValue(), Ordering: p.OrderingValue()}, true
}

// writeError はドメインエラーをHTTPステータスに変換します。
// 想定外のエラーは内部情報を含めずに500を返します。
func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrCompanyNotFound),
		errors.Is(err, usecase.ErrTemplateNotFound),
		errors.Is(err, usecase.ErrEmailNotFound),
		errors.Is(err, usecase.ErrPromptNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrDuplicateCompany):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrContactRequired),
		errors.Is(err, domain.ErrInvalidCompanyType),
		errors.Is(err, domain.ErrInvalidEmailStatus),
		errors.Is(err, domain.ErrInvalidEmailAddress),
		errors.Is(err, domain.ErrPromptTextRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// setIfPresent は src が nil でなければ *dst に代入します。
// PUT（replace=true）では nil をゼロ値として扱います。
func setIfPresent[T any](dst *T, src *T, replace bool) {
	switch {
	case src != nil:
		*dst = *src
	case replace:
		var zero T
		*dst = zero
	}
}
