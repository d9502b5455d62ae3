package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"memberportal/internal/apperrors"
	"memberportal/internal/model"
	"memberportal/internal/repository"
	"memberportal/pkg/crypto"
	"memberportal/pkg/validation"
)

// UserService defines the interface for user-related operations.
type UserService interface {
	// RegisterUser validates the signup input and creates a new user account.
	RegisterUser(ctx context.Context, username, email, password string) (*model.User, error)

	// LoginUser performs user authentication by email and password.
	LoginUser(ctx context.Context, email, password string) (*model.User, error)

	// ListUsers returns all user accounts.
	ListUsers(ctx context.Context) ([]*model.User, error)

	// PromoteUser grants the admin role to the user with the given ID.
	PromoteUser(ctx context.Context, id string) error

	// DemoteUser revokes the admin role from the user with the given ID.
	DemoteUser(ctx context.Context, id string) error

	// LookupByUsername returns the users matching the raw lookup value.
	LookupByUsername(ctx context.Context, raw string) ([]*model.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepository repository.UserRepository
}

// NewUserService creates a new UserServiceImpl instance with the provided userRepository.
func NewUserService(userRepository repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		userRepository: userRepository,
	}
}

func (us *UserServiceImpl) RegisterUser(ctx context.Context, username, email, password string) (*model.User, error) {
	form := validation.SignupForm{
		Username: username,
		Email:    email,
		Password: password,
	}
	if err := validation.Validate(form); err != nil {
		return nil, err
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &model.User{
		CreatedAt:    time.Now(),
		Username:     username,
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: hashedPassword,
	}
	newUser, err = us.userRepository.AddUser(ctx, newUser)
	if err != nil {
		return nil, err
	}

	return newUser, nil
}

func (us *UserServiceImpl) LoginUser(ctx context.Context, email, password string) (*model.User, error) {
	form := validation.LoginForm{
		Email:    email,
		Password: password,
	}
	if err := validation.Validate(form); err != nil {
		return nil, err
	}

	user, err := us.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Unknown email and wrong password must be indistinguishable.
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := crypto.CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrInvalidCredentials) {
			return nil, apperrors.ErrInvalidCredentials
		}

		return nil, err
	}

	return user, nil
}

func (us *UserServiceImpl) ListUsers(ctx context.Context) ([]*model.User, error) {
	return us.userRepository.GetAllUsers(ctx)
}

func (us *UserServiceImpl) PromoteUser(ctx context.Context, id string) error {
	return us.userRepository.SetUserRole(ctx, id, model.RoleAdmin)
}

func (us *UserServiceImpl) DemoteUser(ctx context.Context, id string) error {
	return us.userRepository.SetUserRole(ctx, id, model.RoleUser)
}

// LookupByUsername validates the raw value against the shape-only lookup
// schema and then uses it verbatim as the username matcher. A value shaped
// like an extended-JSON document is handed to the store as a document, so
// inputs such as {"$ne": null} act as query operators. This is the
// deliberately vulnerable lookup-demo path, not a pattern used elsewhere.
func (us *UserServiceImpl) LookupByUsername(ctx context.Context, raw string) ([]*model.User, error) {
	if err := validation.Validate(validation.LookupForm{User: raw}); err != nil {
		return nil, err
	}

	return us.userRepository.FindUsersByUsername(ctx, lookupMatcher(raw))
}

func lookupMatcher(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}

	var doc bson.M
	if err := bson.UnmarshalExtJSON([]byte(trimmed), false, &doc); err != nil {
		return raw
	}

	return doc
}
