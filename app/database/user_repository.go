package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// UserRepositoryImpl handles database operations for users
type UserRepositoryImpl struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) CreateUser(user User) error {
	skills, err := marshalStrings(user.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO users (id, name, email, department, skills, bio, portfolio_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, user.Department, skills, user.Bio, user.PortfolioURL)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetUserByID(id string) (*User, error) {
	return r.getUser("id = ?", id)
}

func (r *UserRepositoryImpl) GetUserByEmail(email string) (*User, error) {
	return r.getUser("email = ?", email)
}

func (r *UserRepositoryImpl) getUser(where string, arg any) (*User, error) {
	var user User
	var skills string

	err := r.db.QueryRow(`
		SELECT id, name, email, department, skills, bio, portfolio_url, created_at, updated_at
		FROM users
		WHERE `+where, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Department, &skills,
		&user.Bio, &user.PortfolioURL, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal([]byte(skills), &user.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) UpdateProfile(id string, bio string, skillList []string, portfolioURL string) error {
	skills, err := marshalStrings(skillList)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE users
		SET bio = ?, skills = ?, portfolio_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, bio, skills, portfolioURL, id)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}

func (r *UserRepositoryImpl) GetUserCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get user count: %w", err)
	}
	return count, nil
}

// marshalStrings encodes a string slice as a JSON array, normalizing
// nil to [] so reads always decode cleanly.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
