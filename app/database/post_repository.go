package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostRepositoryImpl handles database operations for team posts
type PostRepositoryImpl struct {
	db *DB
}

func NewPostRepository(db *DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) CreatePost(post TeamPost) error {
	tags, err := marshalStrings(post.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO team_posts (id, author_id, author_name, author_dept, competition_name, role_needed, description, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.AuthorID, post.AuthorName, post.AuthorDept,
		post.CompetitionName, post.RoleNeeded, post.Description, tags)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPosts returns all posts, newest first.
func (r *PostRepositoryImpl) GetPosts() ([]TeamPost, error) {
	rows, err := r.db.Query(`
		SELECT id, author_id, author_name, author_dept, competition_name, role_needed, description, tags, created_at
		FROM team_posts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	defer rows.Close()

	var posts []TeamPost
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetPostByID(id string) (*TeamPost, error) {
	row := r.db.QueryRow(`
		SELECT id, author_id, author_name, author_dept, competition_name, role_needed, description, tags, created_at
		FROM team_posts
		WHERE id = ?
	`, id)

	post, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost removes a post, but only when authorID matches the stored
// author. A non-author delete is reported as not found.
func (r *PostRepositoryImpl) DeletePost(id, authorID string) error {
	result, err := r.db.Exec(`
		DELETE FROM team_posts
		WHERE id = ? AND author_id = ?
	`, id, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("post not found: %s", id)
	}

	return nil
}

func (r *PostRepositoryImpl) GetPostCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM team_posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}
	return count, nil
}

func scanPost(scan func(...any) error) (TeamPost, error) {
	var post TeamPost
	var tags string

	err := scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.AuthorDept,
		&post.CompetitionName, &post.RoleNeeded, &post.Description, &tags, &post.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return post, err
	}
	if err != nil {
		return post, fmt.Errorf("failed to scan post row: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &post.Tags); err != nil {
		return post, fmt.Errorf("failed to decode tags: %w", err)
	}

	return post, nil
}
