package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shawarma/internal/domain/model"
	repo "shawarma/internal/repository"
	"shawarma/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks / fakes
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Create(ctx context.Context, user model.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

type fakeAuthValidator struct{ err error }

func (v *fakeAuthValidator) ValidateRegister(name, email, password, role string) error {
	return v.err
}

type fakeHasher struct{}

func (h *fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

type fakeVerifier struct{ ok bool }

func (v *fakeVerifier) Verify(plain string, hashed string) bool {
	return v.ok
}

type fakeIssuer struct{}

func (i *fakeIssuer) Issue(userID int64, email string, role model.Role, now time.Time) (string, time.Time, error) {
	return "token-abc", now.Add(24 * time.Hour), nil
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newAuthUsecase(userRepo *AuthUserRepoMock, validatorErr error, verifyOK bool) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		userRepo,
		&fakeAuthValidator{err: validatorErr},
		&fakeHasher{},
		&fakeVerifier{ok: verifyOK},
		&fakeIssuer{},
		&fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, errors.New("Invalid email format"), false)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Ali", Email: "bad", Password: "secret1",
	})

	assertHTTPStatus(t, err, 400)
	assertErrContains(t, err, "Invalid email format")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByEmail", mock.Anything, "ali@example.com").Return(model.User{ID: 1}, nil)

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})

	assertHTTPStatus(t, err, 400)
	assertErrContains(t, err, "Email already exists")
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_Success_DefaultsToCustomer(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByEmail", mock.Anything, "ali@example.com").Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		//平文ではなくハッシュが保存されること、roleは省略時Customer
		return u.Email == "ali@example.com" &&
			u.PasswordHash == "hashed:secret1" &&
			u.Role == model.RoleCustomer &&
			u.IsActive
	})).Return(int64(7), nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Ali", Email: "ali@example.com", Password: "secret1",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, model.RoleCustomer, out.Role)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, "Registration successful", out.Message)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_AdminRole(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByEmail", mock.Anything, "boss@example.com").Return(model.User{}, repo.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Role == model.RoleAdmin
	})).Return(int64(8), nil)

	out, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name: "Boss", Email: "boss@example.com", Password: "secret1", Role: "Admin",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, out.Role)
}

// =====================
// Login
// =====================

// メール不明・パスワード違い・無効化済みは全部同じメッセージ
func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, true)

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ghost@example.com", Password: "x"})

	assertHTTPStatus(t, err, 401)
	assertErrContains(t, err, "Invalid email or password")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByEmail", mock.Anything, "ali@example.com").Return(model.User{
		ID: 7, Email: "ali@example.com", PasswordHash: "hashed:other", IsActive: true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ali@example.com", Password: "wrong"})

	assertHTTPStatus(t, err, 401)
	assertErrContains(t, err, "Invalid email or password")
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, true)

	userRepo.On("FindByEmail", mock.Anything, "ali@example.com").Return(model.User{
		ID: 7, Email: "ali@example.com", PasswordHash: "hashed:secret1", IsActive: false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ali@example.com", Password: "secret1"})

	assertHTTPStatus(t, err, 401)
	assertErrContains(t, err, "Invalid email or password")
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, true)

	userRepo.On("FindByEmail", mock.Anything, "ali@example.com").Return(model.User{
		ID: 7, Name: "Ali", Email: "ali@example.com", Role: model.RoleCustomer,
		PasswordHash: "hashed:secret1", IsActive: true,
	}, nil)

	out, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ali@example.com", Password: "secret1"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.UserID)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, "Login successful", out.Message)
}

// =====================
// GetProfile
// =====================

func TestAuthUsecase_GetProfile_NotFound(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByID", mock.Anything, int64(99)).Return(model.User{}, repo.ErrNotFound)

	_, err := uc.GetProfile(context.Background(), 99)

	assertHTTPStatus(t, err, 404)
	assertErrContains(t, err, "User not found")
}

func TestAuthUsecase_GetProfile_Success(t *testing.T) {
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo, nil, false)

	userRepo.On("FindByID", mock.Anything, int64(7)).Return(model.User{
		ID: 7, Name: "Ali", Email: "ali@example.com", Role: model.RoleCustomer, IsActive: true,
	}, nil)

	out, err := uc.GetProfile(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, "Ali", out.Name)
	assert.Empty(t, out.Token) //プロフィールではトークンを返さない
	assert.Equal(t, "Profile retrieved successfully", out.Message)
}

// bcryptの実装もそのまま回す
func TestBcryptHasherAndVerifier_RoundTrip(t *testing.T) {
	hasher := usecase.NewBcryptPasswordHasher(4) //テストは低コストで
	verifier := usecase.NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	assert.True(t, verifier.Verify("secret1", hashed))
	assert.False(t, verifier.Verify("wrong", hashed))
}
