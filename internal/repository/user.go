package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ravenshold/guildhall/api/internal/database"
	"github.com/ravenshold/guildhall/api/internal/model"
)

// UserRepository handles account persistence
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers an account. The email uniqueness check and the insert
// run in one transaction. Returns database.ErrDuplicate when the email is
// taken.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		BEGIN TRANSACTION;
		IF (SELECT VALUE id FROM user WHERE email = $email) != [] {
			THROW "email already exists";
		};
		CREATE user CONTENT {
			email: $email,
			username: $username,
			password_hash: $password_hash,
			role: $role,
			created_on: time::now()
		};
		COMMIT TRANSACTION;
	`
	vars := map[string]interface{}{
		"email":         user.Email,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"role":          string(user.Role),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already registered", database.ErrDuplicate)
		}
		return err
	}

	records := unwrapMany(results)
	if len(records) == 0 {
		return database.ErrQuery
	}

	created, err := parseUserRecord(records[len(records)-1])
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.CreatedOn = created.CreatedOn
	return nil
}

// GetByEmail retrieves an account by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapOne(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserRecord(data)
}

// GetByID retrieves an account by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapOne(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return parseUserRecord(data)
}

func parseUserRecord(data map[string]interface{}) (*model.User, error) {
	createdOn := parseTime(data["created_on"])
	delete(data, "created_on")

	hash, _ := data["password_hash"].(string)
	delete(data, "password_hash")

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.CreatedOn = createdOn
	return &user, nil
}
