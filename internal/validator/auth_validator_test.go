package validator_test

import (
	"testing"

	"shawarma/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestAuthValidator_ValidateRegister(t *testing.T) {
	v := validator.NewAuthValidator()

	tests := []struct {
		name     string
		inName   string
		email    string
		password string
		role     string
		wantErr  string
	}{
		{"正常", "Ali", "ali@example.com", "secret1", "Customer", ""},
		{"管理者も可", "Boss", "boss@example.com", "secret1", "Admin", ""},
		{"名前なし", "  ", "ali@example.com", "secret1", "Customer", "Name is required"},
		{"メール形式不正", "Ali", "not-an-email", "secret1", "Customer", "Invalid email format"},
		{"メールなし", "Ali", "", "secret1", "Customer", "Invalid email format"},
		{"パスワード短い", "Ali", "ali@example.com", "12345", "Customer", "Password must be at least 6 characters"},
		{"ロール不正", "Ali", "ali@example.com", "secret1", "Manager", "Invalid role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(tt.inName, tt.email, tt.password, tt.role)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
