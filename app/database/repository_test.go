package database

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user := User{
		ID:         "u1",
		Name:       "王小明",
		Email:      "ming@example.com",
		Department: "資訊工程學系",
		Skills:     []string{"Go", "React"},
	}
	if err := repo.CreateUser(user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	got, err := repo.GetUserByEmail("ming@example.com")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got == nil {
		t.Fatal("Expected user, got nil")
	}
	if got.Name != "王小明" {
		t.Errorf("Expected name '王小明', got: %s", got.Name)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Errorf("Expected skills [Go React], got: %v", got.Skills)
	}

	missing, err := repo.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("Expected no error for unknown email, got: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown email")
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.CreateUser(User{ID: "u1", Name: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("Failed to create first user: %v", err)
	}
	if err := repo.CreateUser(User{ID: "u2", Name: "B", Email: "dup@example.com"}); err == nil {
		t.Error("Expected error for duplicate email")
	}
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.CreateUser(User{ID: "u1", Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	err := repo.UpdateProfile("u1", "熱愛競賽", []string{"Python"}, "https://portfolio.example.com")
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}

	got, err := repo.GetUserByID("u1")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.Bio != "熱愛競賽" {
		t.Errorf("Expected updated bio, got: %s", got.Bio)
	}
	if len(got.Skills) != 1 || got.Skills[0] != "Python" {
		t.Errorf("Expected skills [Python], got: %v", got.Skills)
	}
	if got.PortfolioURL != "https://portfolio.example.com" {
		t.Errorf("Expected updated portfolio URL, got: %s", got.PortfolioURL)
	}

	if err := repo.UpdateProfile("missing", "", nil, ""); err == nil {
		t.Error("Expected error when updating unknown user")
	}
}

func TestFavoriteToggleIsInverse(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	favorites := NewFavoriteRepository(db)

	if err := users.CreateUser(User{ID: "u1", Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	favorited, err := favorites.Toggle("u1", "7")
	if err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}
	if !favorited {
		t.Error("Expected first toggle to favorite")
	}

	is, err := favorites.IsFavorited("u1", "7")
	if err != nil {
		t.Fatalf("Failed to check favorite: %v", err)
	}
	if !is {
		t.Error("Expected record to be favorited")
	}

	// Toggling again restores the prior state
	favorited, err = favorites.Toggle("u1", "7")
	if err != nil {
		t.Fatalf("Failed to toggle favorite back: %v", err)
	}
	if favorited {
		t.Error("Expected second toggle to unfavorite")
	}

	ids, err := favorites.GetFavoriteIDs("u1")
	if err != nil {
		t.Fatalf("Failed to get favorite ids: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no favorites after double toggle, got: %v", ids)
	}
}

func TestFavoriteIDsPerUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	favorites := NewFavoriteRepository(db)

	for _, u := range []User{
		{ID: "u1", Name: "A", Email: "a@example.com"},
		{ID: "u2", Name: "B", Email: "b@example.com"},
	} {
		if err := users.CreateUser(u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	}

	for _, id := range []string{"1", "3"} {
		if _, err := favorites.Toggle("u1", id); err != nil {
			t.Fatalf("Failed to toggle favorite: %v", err)
		}
	}
	if _, err := favorites.Toggle("u2", "2"); err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}

	ids, err := favorites.GetFavoriteIDs("u1")
	if err != nil {
		t.Fatalf("Failed to get favorite ids: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 favorites for u1, got: %v", ids)
	}

	ids, err = favorites.GetFavoriteIDs("u2")
	if err != nil {
		t.Fatalf("Failed to get favorite ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "2" {
		t.Errorf("Expected [2] for u2, got: %v", ids)
	}
}

func TestPostRepositoryCreateAndList(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	if err := users.CreateUser(User{ID: "u1", Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	for _, post := range []TeamPost{
		{ID: "p1", AuthorID: "u1", AuthorName: "A", CompetitionName: "黑客松", RoleNeeded: "後端工程師", Tags: []string{"Go"}},
		{ID: "p2", AuthorID: "u1", AuthorName: "A", CompetitionName: "創業賽", RoleNeeded: "設計師", Tags: []string{"Figma", "UI"}},
	} {
		if err := posts.CreatePost(post); err != nil {
			t.Fatalf("Failed to create post: %v", err)
		}
	}

	all, err := posts.GetPosts()
	if err != nil {
		t.Fatalf("Failed to get posts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 posts, got: %d", len(all))
	}
	// Newest first; equal timestamps fall back to id descending
	if all[0].ID != "p2" {
		t.Errorf("Expected newest post first, got: %s", all[0].ID)
	}
	if len(all[0].Tags) != 2 || all[0].Tags[0] != "Figma" {
		t.Errorf("Expected tags [Figma UI], got: %v", all[0].Tags)
	}

	got, err := posts.GetPostByID("p1")
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if got == nil || got.RoleNeeded != "後端工程師" {
		t.Errorf("Unexpected post: %+v", got)
	}

	missing, err := posts.GetPostByID("nope")
	if err != nil {
		t.Fatalf("Expected no error for unknown post, got: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for unknown post")
	}
}

func TestPostRepositoryDeleteAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)

	for _, u := range []User{
		{ID: "u1", Name: "A", Email: "a@example.com"},
		{ID: "u2", Name: "B", Email: "b@example.com"},
	} {
		if err := users.CreateUser(u); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
	}
	if err := posts.CreatePost(TeamPost{ID: "p1", AuthorID: "u1", AuthorName: "A", CompetitionName: "黑客松", RoleNeeded: "前端"}); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if err := posts.DeletePost("p1", "u2"); err == nil {
		t.Error("Expected error when deleting someone else's post")
	}
	if err := posts.DeletePost("p1", "u1"); err != nil {
		t.Errorf("Expected author delete to succeed, got: %v", err)
	}

	count, err := posts.GetPostCount()
	if err != nil {
		t.Fatalf("Failed to get post count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 posts after delete, got: %d", count)
	}
}
