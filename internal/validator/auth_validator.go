package validator

import (
	"errors"
	"net/mail"
	"strings"

	"shawarma/internal/domain/model"
	"shawarma/internal/usecase"
)

var (
	ErrNameRequired       = errors.New("Name is required")
	ErrInvalidEmailFormat = errors.New("Invalid email format")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters")
	ErrInvalidRole        = errors.New("Invalid role")
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(name string, email string, password string, role string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}

	// email形式
	if !isEmailLike(email) {
		return ErrInvalidEmailFormat
	}

	// パスワード最低文字数
	if len(password) < 6 {
		return ErrPasswordTooShort
	}

	// roleはCustomer/Adminのみ
	switch model.Role(role) {
	case model.RoleCustomer, model.RoleAdmin:
		return nil
	default:
		return ErrInvalidRole
	}
}

func isEmailLike(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	_, err := mail.ParseAddress(trimmed)
	return err == nil
}
