// Package adapters はcrmフィーチャーのGORMリポジトリ実装を提供します。
package adapters

import (
	"strings"

	"gorm.io/gorm"
)

// applySearch は columns のいずれかに term を含む行に絞り込みます（大文字小文字を区別しない）。
func applySearch(tx *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return tx
	}
	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// orderClause は ordering を許可されたカラムのORDER BY句に変換します。
// 先頭の "-" は降順を意味します。許可されていない値の場合は fallback を返します。
func orderClause(ordering string, allowed map[string]string, fallback string) string {
	field := strings.TrimSpace(ordering)
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	col, ok := allowed[field]
	if !ok {
		return fallback
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
