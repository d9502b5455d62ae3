package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"memberportal/internal/apperrors"
	"memberportal/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository for testing purposes.
type MockUserRepository struct {
	Users          map[string]*model.User // Map to store users by ID
	LastInsertedID int                    // To generate deterministic IDs
	Calls          int                    // Counts every repository call
	FailWith       error                  // When set, every call fails with it
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*model.User),
	}
}

// AddUser is a mock implementation of AddUser method.
func (m *MockUserRepository) AddUser(ctx context.Context, user *model.User) (*model.User, error) {
	m.Calls++
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return nil, apperrors.ErrUsernameTaken
		}
	}

	m.LastInsertedID++
	user.ID = fmt.Sprintf("user-%d", m.LastInsertedID)
	m.Users[user.ID] = user
	return user, nil
}

// GetUserByEmail is a mock implementation of GetUserByEmail method.
func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.Calls++
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, nil
}

// FindUsersByUsername is a mock implementation of FindUsersByUsername method.
// It mirrors the document store's matching: a plain string matches equal
// usernames, while a document-shaped value with "$ne" is treated as the
// not-equal operator.
func (m *MockUserRepository) FindUsersByUsername(ctx context.Context, username any) ([]*model.User, error) {
	m.Calls++
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	match := func(candidate string) bool {
		switch v := username.(type) {
		case string:
			return candidate == v
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return false
			}
			var operator struct {
				Ne *string `json:"$ne"`
			}
			if err := json.Unmarshal(raw, &operator); err != nil {
				return false
			}
			if operator.Ne == nil {
				return candidate != ""
			}
			return candidate != *operator.Ne
		}
	}

	users := make([]*model.User, 0)
	for _, user := range m.Users {
		if match(user.Username) {
			users = append(users, user)
		}
	}

	return users, nil
}

// GetAllUsers is a mock implementation of GetAllUsers method.
func (m *MockUserRepository) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	m.Calls++
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	users := make([]*model.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}

	return users, nil
}

// SetUserRole is a mock implementation of SetUserRole method.
func (m *MockUserRepository) SetUserRole(ctx context.Context, id, role string) error {
	m.Calls++
	if m.FailWith != nil {
		return m.FailWith
	}

	user, ok := m.Users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}

	user.Role = role
	return nil
}
