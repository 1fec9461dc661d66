package usecase_test

import (
	"context"
	"testing"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, q repository.UserListQuery) ([]model.User, int64, error) {
	args := m.Called(ctx, q)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

// =====================
// Mock: AuthTokenRepository
// =====================

type MockAuthTokenRepository struct {
	mock.Mock
}

func (m *MockAuthTokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthTokenRepository) FindByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	args := m.Called(ctx, key)
	t, _ := args.Get(0).(*model.AuthToken)
	return t, args.Error(1)
}

func (m *MockAuthTokenRepository) FindByKeyAndKind(ctx context.Context, key string, kind model.TokenKind) (*model.AuthToken, error) {
	args := m.Called(ctx, key, kind)
	t, _ := args.Get(0).(*model.AuthToken)
	return t, args.Error(1)
}

func (m *MockAuthTokenRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthTokenRepository) DeleteAllByUserIDAndKind(ctx context.Context, userID string, kind model.TokenKind) error {
	args := m.Called(ctx, userID, kind)
	return args.Error(0)
}

func (m *MockAuthTokenRepository) Deactivate(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// =====================
// Mock: BarkRepository
// =====================

type MockBarkRepository struct {
	mock.Mock
}

func (m *MockBarkRepository) Create(ctx context.Context, bark *model.Bark) error {
	args := m.Called(ctx, bark)
	return args.Error(0)
}

func (m *MockBarkRepository) FindByID(ctx context.Context, barkID string) (*model.Bark, error) {
	args := m.Called(ctx, barkID)
	b, _ := args.Get(0).(*model.Bark)
	return b, args.Error(1)
}

func (m *MockBarkRepository) Update(ctx context.Context, bark *model.Bark) error {
	args := m.Called(ctx, bark)
	return args.Error(0)
}

func (m *MockBarkRepository) Delete(ctx context.Context, barkID string) error {
	args := m.Called(ctx, barkID)
	return args.Error(0)
}

func (m *MockBarkRepository) List(ctx context.Context, q repository.BarkListQuery) ([]model.Bark, int64, error) {
	args := m.Called(ctx, q)
	barks, _ := args.Get(0).([]model.Bark)
	return barks, args.Get(1).(int64), args.Error(2)
}

func (m *MockBarkRepository) IncrementSniffCount(ctx context.Context, barkID string) error {
	args := m.Called(ctx, barkID)
	return args.Error(0)
}

// =====================
// Mock: SniffRepository
// =====================

type MockSniffRepository struct {
	mock.Mock
}

func (m *MockSniffRepository) Create(ctx context.Context, sniff *model.Sniff) error {
	args := m.Called(ctx, sniff)
	return args.Error(0)
}

func (m *MockSniffRepository) Exists(ctx context.Context, userID string, barkID string) (bool, error) {
	args := m.Called(ctx, userID, barkID)
	return args.Bool(0), args.Error(1)
}

// =====================
// TxManager（モックrepoをそのまま返すfake）
// =====================

type fakeTxRepos struct {
	users  repository.UserRepository
	tokens repository.AuthTokenRepository
	barks  repository.BarkRepository
	sniffs repository.SniffRepository
}

func (r *fakeTxRepos) Users() repository.UserRepository           { return r.users }
func (r *fakeTxRepos) AuthTokens() repository.AuthTokenRepository { return r.tokens }
func (r *fakeTxRepos) Barks() repository.BarkRepository           { return r.barks }
func (r *fakeTxRepos) Sniffs() repository.SniffRepository         { return r.sniffs }

type fakeTxManager struct {
	repos *fakeTxRepos
}

func (tm *fakeTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	return fn(tm.repos)
}

func newFakeTxManager(
	users *MockUserRepository,
	tokens *MockAuthTokenRepository,
	barks *MockBarkRepository,
	sniffs *MockSniffRepository,
) *fakeTxManager {
	return &fakeTxManager{repos: &fakeTxRepos{
		users:  users,
		tokens: tokens,
		barks:  barks,
		sniffs: sniffs,
	}}
}

// =====================
// Validator（常に通すstub）
// =====================

type passValidator struct{}

func (passValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	return nil
}
func (passValidator) ValidateRefresh(ctx context.Context, refreshToken string) error { return nil }
func (passValidator) ValidateRegister(ctx context.Context, username string, password string) error {
	return nil
}

// =====================
// Helper
// =====================

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}
