package seed

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccuhub/compscout/app/database"
)

//go:embed seed_posts.yml
var defaultFixture []byte

type fixture struct {
	Users []struct {
		ID         string   `yaml:"id"`
		Name       string   `yaml:"name"`
		Email      string   `yaml:"email"`
		Department string   `yaml:"department"`
		Skills     []string `yaml:"skills"`
		Bio        string   `yaml:"bio"`
	} `yaml:"users"`
	Posts []struct {
		ID              string   `yaml:"id"`
		AuthorID        string   `yaml:"author_id"`
		AuthorName      string   `yaml:"author_name"`
		AuthorDept      string   `yaml:"author_dept"`
		CompetitionName string   `yaml:"competition_name"`
		RoleNeeded      string   `yaml:"role_needed"`
		Description     string   `yaml:"description"`
		Tags            []string `yaml:"tags"`
	} `yaml:"posts"`
}

// Run populates the team-post board from a YAML fixture when the table
// is empty. An explicit path overrides the embedded fixture. A board
// that already has posts is left alone.
func Run(users database.UserRepository, posts database.PostRepository, path string) error {
	count, err := posts.GetPostCount()
	if err != nil {
		return fmt.Errorf("failed to check post count: %w", err)
	}
	if count > 0 {
		slog.Debug("Team posts already present, skipping seed", "count", count)
		return nil
	}

	data := defaultFixture
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
	}

	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, u := range f.Users {
		existing, err := users.GetUserByEmail(u.Email)
		if err != nil {
			return fmt.Errorf("failed to check seed user: %w", err)
		}
		if existing != nil {
			continue
		}
		err = users.CreateUser(database.User{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Department: u.Department,
			Skills:     u.Skills,
			Bio:        u.Bio,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed user: %w", err)
		}
	}

	for _, p := range f.Posts {
		err = posts.CreatePost(database.TeamPost{
			ID:              p.ID,
			AuthorID:        p.AuthorID,
			AuthorName:      p.AuthorName,
			AuthorDept:      p.AuthorDept,
			CompetitionName: p.CompetitionName,
			RoleNeeded:      p.RoleNeeded,
			Description:     p.Description,
			Tags:            p.Tags,
		})
		if err != nil {
			return fmt.Errorf("failed to create seed post: %w", err)
		}
	}

	slog.Info("Seeded team posts", "users", len(f.Users), "posts", len(f.Posts))

	return nil
}
