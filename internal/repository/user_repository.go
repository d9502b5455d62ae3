package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"memberportal/internal/apperrors"
	"memberportal/internal/database"
	"memberportal/internal/model"
)

// UserRepository is an interface that defines the methods required for user data management.
type UserRepository interface {
	// AddUser adds a new user to the store and returns it with its assigned ID.
	AddUser(ctx context.Context, user *model.User) (addedUser *model.User, err error)

	// GetUserByEmail retrieves a user by email. It returns nil, nil when no user matches.
	GetUserByEmail(ctx context.Context, email string) (user *model.User, err error)

	// FindUsersByUsername retrieves every user whose username matches the
	// provided filter value. The value is used verbatim as the matcher, so a
	// document-shaped value is interpreted by the database as an operator.
	FindUsersByUsername(ctx context.Context, username any) (users []*model.User, err error)

	// GetAllUsers retrieves all users from the store.
	GetAllUsers(ctx context.Context) (users []*model.User, err error)

	// SetUserRole updates the role of the user with the given ID.
	SetUserRole(ctx context.Context, id, role string) (err error)
}

// UserRepositoryImpl implements the UserRepository interface on the document store.
type UserRepositoryImpl struct {
	users *mongo.Collection
}

// NewUserRepository creates a new UserRepositoryImpl instance with the provided database.
func NewUserRepository(db *database.MongoDatabase) *UserRepositoryImpl {
	return &UserRepositoryImpl{
		users: db.Users(),
	}
}

func (ur *UserRepositoryImpl) AddUser(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = uuid.NewString()

	if _, err := ur.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrUsernameTaken
		}

		return nil, fmt.Errorf("failed to add user: %w", err)
	}

	return user, nil
}

func (ur *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := ur.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (ur *UserRepositoryImpl) FindUsersByUsername(ctx context.Context, username any) ([]*model.User, error) {
	cursor, err := ur.users.Find(ctx, bson.M{"username": username})
	if err != nil {
		return nil, fmt.Errorf("failed to find users by username: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (ur *UserRepositoryImpl) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	cursor, err := ur.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (ur *UserRepositoryImpl) SetUserRole(ctx context.Context, id, role string) error {
	result, err := ur.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
