package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberportal/internal/apperrors"
	"memberportal/internal/model"
	"memberportal/internal/repository"
	"memberportal/pkg/crypto"
)

func TestRegisterUser(t *testing.T) {
	data := []struct {
		name        string
		username    string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:     "valid signup",
			username: "alice",
			email:    "a@x.com",
			password: "pw12345",
		},
		{
			name:        "malformed email",
			username:    "alice",
			email:       "notanemail",
			password:    "pw12345",
			expectedErr: apperrors.Validation(""),
		},
		{
			name:        "username too long",
			username:    strings.Repeat("a", 21),
			email:       "a@x.com",
			password:    "pw12345",
			expectedErr: apperrors.Validation(""),
		},
		{
			name:        "username with special chars",
			username:    "al!ce",
			email:       "a@x.com",
			password:    "pw12345",
			expectedErr: apperrors.Validation(""),
		},
	}

	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			mockRepo := repository.NewMockUserRepository()
			us := NewUserService(mockRepo)

			user, err := us.RegisterUser(context.Background(), d.username, d.email, d.password)
			if d.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				// Invalid input must be rejected before the store is touched.
				assert.Zero(t, mockRepo.Calls)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, user.ID)
			assert.Equal(t, d.username, user.Username)
			assert.Equal(t, model.RoleUser, user.Role)

			// The stored hash must never equal the plaintext and must verify.
			assert.NotEqual(t, d.password, user.PasswordHash)
			assert.NoError(t, crypto.CheckPassword(d.password, user.PasswordHash))
		})
	}
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	mockRepo := repository.NewMockUserRepository()
	us := NewUserService(mockRepo)

	_, err := us.RegisterUser(context.Background(), "alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	_, err = us.RegisterUser(context.Background(), "alice", "other@x.com", "pw12345")
	require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestLoginUser(t *testing.T) {
	mockRepo := repository.NewMockUserRepository()
	us := NewUserService(mockRepo)

	_, err := us.RegisterUser(context.Background(), "alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		user, err := us.LoginUser(context.Background(), "a@x.com", "pw12345")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, wrongPasswordErr := us.LoginUser(context.Background(), "a@x.com", "wrongpw")
		_, unknownEmailErr := us.LoginUser(context.Background(), "nobody@x.com", "pw12345")

		require.ErrorIs(t, wrongPasswordErr, apperrors.ErrInvalidCredentials)
		require.ErrorIs(t, unknownEmailErr, apperrors.ErrInvalidCredentials)
		assert.Equal(t, wrongPasswordErr.Error(), unknownEmailErr.Error())
	})

	t.Run("malformed email rejected before store lookup", func(t *testing.T) {
		before := mockRepo.Calls
		_, err := us.LoginUser(context.Background(), "notanemail", "pw12345")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Equal(t, before, mockRepo.Calls)
	})
}

func TestPromoteAndDemoteUser(t *testing.T) {
	mockRepo := repository.NewMockUserRepository()
	us := NewUserService(mockRepo)

	user, err := us.RegisterUser(context.Background(), "alice", "a@x.com", "pw12345")
	require.NoError(t, err)

	require.NoError(t, us.PromoteUser(context.Background(), user.ID))
	assert.Equal(t, model.RoleAdmin, mockRepo.Users[user.ID].Role)

	require.NoError(t, us.DemoteUser(context.Background(), user.ID))
	assert.Equal(t, model.RoleUser, mockRepo.Users[user.ID].Role)

	err = us.PromoteUser(context.Background(), "no-such-id")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLookupByUsername(t *testing.T) {
	mockRepo := repository.NewMockUserRepository()
	us := NewUserService(mockRepo)

	_, err := us.RegisterUser(context.Background(), "alice", "a@x.com", "pw12345")
	require.NoError(t, err)
	_, err = us.RegisterUser(context.Background(), "bob", "b@x.com", "pw12345")
	require.NoError(t, err)

	t.Run("plain string matches one user", func(t *testing.T) {
		users, err := us.LookupByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)
	})

	t.Run("operator document matches every user", func(t *testing.T) {
		users, err := us.LookupByUsername(context.Background(), `{"$ne": null}`)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("too long input rejected before store lookup", func(t *testing.T) {
		before := mockRepo.Calls
		_, err := us.LookupByUsername(context.Background(), strings.Repeat("x", 21))
		require.Error(t, err)
		assert.Equal(t, before, mockRepo.Calls)
	})
}

func TestLoginUserRepositoryFailure(t *testing.T) {
	mockRepo := repository.NewMockUserRepository()
	mockRepo.FailWith = errors.New("connection reset")
	us := NewUserService(mockRepo)

	_, err := us.LoginUser(context.Background(), "a@x.com", "pw12345")
	require.Error(t, err)
	require.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
