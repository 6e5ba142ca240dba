package api

import (
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// ListParams は一覧エンドポイント共通のクエリパラメータです。
type ListParams struct {
	Search   *string `form:"search,omitempty" json:"search,omitempty"`
	Ordering *string `form:"ordering,omitempty" json:"ordering,omitempty"`
}

// BindListParams はクエリ文字列から ?search=&ordering= を読み取ります。
func BindListParams(query url.Values) (ListParams, error) {
	var p ListParams
	if err := runtime.BindQueryParameter("form", true, false, "search", query, &p.Search); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "ordering", query, &p.Ordering); err != nil {
		return p, err
	}
	return p, nil
}

// SearchValue は検索語を返します。未指定の場合は空文字です。
func (p ListParams) SearchValue() string {
	if p.Search == nil {
		return ""
	}
	return *p.Search
}

// OrderingValue は並び順を返します。未指定の場合は空文字です。
func (p ListParams) OrderingValue() string {
	if p.Ordering == nil {
		return ""
	}
	return *p.Ordering
}
