package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccuhub/compscout/app/database"
)

func newTestRepos(t *testing.T) (database.UserRepository, database.PostRepository) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return database.NewUserRepository(db), database.NewPostRepository(db)
}

func TestSeedEmbeddedFixture(t *testing.T) {
	users, posts := newTestRepos(t)

	if err := Run(users, posts, ""); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	all, err := posts.GetPosts()
	if err != nil {
		t.Fatalf("Failed to get posts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 seeded posts, got: %d", len(all))
	}

	user, err := users.GetUserByEmail("ming@ccu.edu.tw")
	if err != nil {
		t.Fatalf("Failed to get seed user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected seed user to exist")
	}
	if user.Name != "王小明" {
		t.Errorf("Expected name '王小明', got: %s", user.Name)
	}
}

func TestSeedSkipsNonEmptyBoard(t *testing.T) {
	users, posts := newTestRepos(t)

	if err := users.CreateUser(database.User{ID: "u1", Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if err := posts.CreatePost(database.TeamPost{ID: "p1", AuthorID: "u1", AuthorName: "A", CompetitionName: "既有賽事", RoleNeeded: "前端"}); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if err := Run(users, posts, ""); err != nil {
		t.Fatalf("Failed to run seed: %v", err)
	}

	count, err := posts.GetPostCount()
	if err != nil {
		t.Fatalf("Failed to get post count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected board untouched with 1 post, got: %d", count)
	}
}

func TestSeedCustomFixture(t *testing.T) {
	users, posts := newTestRepos(t)

	fixture := `
users:
  - id: custom-user
    name: 測試者
    email: tester@example.com
posts:
  - id: custom-post
    author_id: custom-user
    author_name: 測試者
    competition_name: 自訂賽事
    role_needed: 資料科學家
    tags: [Python]
`
	path := filepath.Join(t.TempDir(), "fixture.yml")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if err := Run(users, posts, path); err != nil {
		t.Fatalf("Failed to seed from custom fixture: %v", err)
	}

	post, err := posts.GetPostByID("custom-post")
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if post == nil || post.CompetitionName != "自訂賽事" {
		t.Errorf("Unexpected seeded post: %+v", post)
	}
}

func TestSeedMissingFile(t *testing.T) {
	users, posts := newTestRepos(t)

	if err := Run(users, posts, "/nonexistent/fixture.yml"); err == nil {
		t.Error("Expected error for missing seed file")
	}
}
