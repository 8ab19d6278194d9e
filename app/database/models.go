package database

import (
	"time"
)

// User represents a registered account. Skills is stored as a JSON
// array in SQLite and unpacked on read.
type User struct {
	ID           string
	Name         string
	Email        string
	Department   string
	Skills       []string
	Bio          string
	PortfolioURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TeamPost is a teammate-recruitment notice. Author fields are
// denormalized at creation so posts render without a join.
type TeamPost struct {
	ID              string
	AuthorID        string
	AuthorName      string
	AuthorDept      string
	CompetitionName string
	RoleNeeded      string
	Description     string
	Tags            []string
	CreatedAt       time.Time
}
