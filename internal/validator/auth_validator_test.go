package validator_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestValidateSignup_OK(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(nil, nil)

	v := validator.NewAuthValidator(users)

	err := v.ValidateSignup(context.Background(), "山田太郎", "taro@example.com", "secret1", "buyer")
	assert.NoError(t, err)
}

func TestValidateSignup_MissingFields(t *testing.T) {
	v := validator.NewAuthValidator(new(UserRepoMock))

	cases := []struct {
		name     string
		fullName string
		email    string
		password string
		role     string
	}{
		{"name missing", "", "taro@example.com", "secret1", "buyer"},
		{"email missing", "山田太郎", "", "secret1", "buyer"},
		{"password missing", "山田太郎", "taro@example.com", "", "buyer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateSignup(context.Background(), tc.fullName, tc.email, tc.password, tc.role)
			assert.ErrorIs(t, err, validator.ErrInvalidInput)
		})
	}
}

func TestValidateSignup_BadEmail(t *testing.T) {
	v := validator.NewAuthValidator(new(UserRepoMock))

	for _, email := range []string{"taro", "taro@", "@example.com", "taro example.com", "taro@example"} {
		err := v.ValidateSignup(context.Background(), "山田太郎", email, "secret1", "buyer")
		assert.ErrorIs(t, err, validator.ErrInvalidInput, "email=%s", email)
	}
}

func TestValidateSignup_ShortPassword(t *testing.T) {
	v := validator.NewAuthValidator(new(UserRepoMock))

	//6文字未満は不可
	err := v.ValidateSignup(context.Background(), "山田太郎", "taro@example.com", "12345", "buyer")
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestValidateSignup_Role(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, nil)

	v := validator.NewAuthValidator(users)

	//buyer/sellerのみ許可
	assert.NoError(t, v.ValidateSignup(context.Background(), "山田太郎", "a@example.com", "secret1", "buyer"))
	assert.NoError(t, v.ValidateSignup(context.Background(), "山田太郎", "b@example.com", "secret1", "seller"))

	assert.ErrorIs(t, v.ValidateSignup(context.Background(), "山田太郎", "c@example.com", "secret1", "admin"), validator.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateSignup(context.Background(), "山田太郎", "d@example.com", "secret1", ""), validator.ErrInvalidInput)
}

func TestValidateSignup_DuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(&model.User{ID: 1, Email: "taro@example.com"}, nil)

	v := validator.NewAuthValidator(users)

	err := v.ValidateSignup(context.Background(), "山田太郎", "taro@example.com", "secret1", "buyer")
	assert.ErrorIs(t, err, validator.ErrEmailAlreadyUsed)
}

func TestValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator(new(UserRepoMock))

	assert.NoError(t, v.ValidateLogin(context.Background(), "taro@example.com", "secret1"))
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "", "secret1"), validator.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "taro@example.com", ""), validator.ErrInvalidInput)
	assert.ErrorIs(t, v.ValidateLogin(context.Background(), "not-an-email", "secret1"), validator.ErrInvalidInput)
}

func TestValidateRefresh(t *testing.T) {
	v := validator.NewAuthValidator(new(UserRepoMock))

	assert.NoError(t, v.ValidateRefresh(context.Background(), "sometoken", "ua"))
	assert.ErrorIs(t, v.ValidateRefresh(context.Background(), "  ", "ua"), validator.ErrInvalidRefresh)
}
