package database

import (
	"fmt"
)

// FavoriteRepositoryImpl handles database operations for favorites
type FavoriteRepositoryImpl struct {
	db *DB
}

func NewFavoriteRepository(db *DB) *FavoriteRepositoryImpl {
	return &FavoriteRepositoryImpl{db: db}
}

// Toggle flips the favorite state for one user/record pair. The check
// and the flip run inside one transaction so concurrent toggles cannot
// double-insert or double-delete.
func (r *FavoriteRepositoryImpl) Toggle(userID, competitionID string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM favorites
		WHERE user_id = ? AND competition_id = ?
	`, userID, competitionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	var favorited bool
	if exists > 0 {
		_, err = tx.Exec(`
			DELETE FROM favorites
			WHERE user_id = ? AND competition_id = ?
		`, userID, competitionID)
		favorited = false
	} else {
		_, err = tx.Exec(`
			INSERT INTO favorites (user_id, competition_id)
			VALUES (?, ?)
		`, userID, competitionID)
		favorited = true
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return favorited, nil
}

func (r *FavoriteRepositoryImpl) GetFavoriteIDs(userID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT competition_id FROM favorites
		WHERE user_id = ?
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return ids, nil
}

func (r *FavoriteRepositoryImpl) IsFavorited(userID, competitionID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM favorites
		WHERE user_id = ? AND competition_id = ?
	`, userID, competitionID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
