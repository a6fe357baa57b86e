package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"shawarma/internal/domain/model"
	repo "shawarma/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// bcryptハッシュと平文を比較
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 署名付きトークンを発行する約束
type TokenIssuer interface {
	Issue(userID int64, email string, role model.Role, now time.Time) (string, time.Time, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 会員登録の入力検証（validatorパッケージが実装）
type AuthValidator interface {
	ValidateRegister(name string, email string, password string, role string) error
}

type AuthUsecase struct {
	userRepo  repo.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    TokenIssuer
	clock     Clock
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		clock:     clock,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	UserID  int64      `json:"userID"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Role    model.Role `json:"role"`
	Token   string     `json:"token,omitempty"`
	Message string     `json:"message"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(model.RoleCustomer)
	}

	if err := u.validator.ValidateRegister(in.Name, in.Email, in.Password, role); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email := strings.TrimSpace(in.Email)

	//email重複チェック
	_, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "Email already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		logger.Error().Err(err).Msg("Error checking existing email")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	userID, err := u.userRepo.Create(ctx, model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hashed, //平文は保存しない
		Role:         model.Role(role),
		IsActive:     true,
		CreatedAt:    now,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, _, err := u.issuer.Issue(userID, email, model.Role(role), now)
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing token")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		UserID:  userID,
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Role:    model.Role(role),
		Token:   token,
		Message: "Registration successful",
	}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.TrimSpace(in.Email)

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		//メール不明もパスワード違いも同じメッセージ（どちらが違うか漏らさない）
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error getting user by email")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, _, err := u.issuer.Issue(user.ID, user.Email, user.Role, u.clock.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing token")
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthOutput{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Token:   token,
		Message: "Login successful",
	}, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, userID int64) (AuthOutput, error) {
	if userID <= 0 {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user %d", userID)
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AuthOutput{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Message: "Profile retrieved successfully",
	}, nil
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
