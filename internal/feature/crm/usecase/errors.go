// Package usecase はcrmフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrCompanyNotFound is returned when a company cannot be found by ID.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrTemplateNotFound is returned when a template cannot be found by ID.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrEmailNotFound is returned when an email record cannot be found by ID.
	ErrEmailNotFound = errors.New("email not found")

	// ErrPromptNotFound is returned when a prompt cannot be found by ID.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrDuplicateCompany is returned when a company with the same email already exists.
	ErrDuplicateCompany = errors.New("company already exists")
)
