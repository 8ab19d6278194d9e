package database

type UserRepository interface {
	CreateUser(user User) error
	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateProfile(id string, bio string, skills []string, portfolioURL string) error
	GetUserCount() (int, error)
}

type FavoriteRepository interface {
	// Toggle flips the favorite flag for one user/record pair in a
	// single transaction and reports the resulting state.
	Toggle(userID, competitionID string) (bool, error)
	GetFavoriteIDs(userID string) ([]string, error)
	IsFavorited(userID, competitionID string) (bool, error)
}

type PostRepository interface {
	CreatePost(post TeamPost) error
	GetPosts() ([]TeamPost, error)
	GetPostByID(id string) (*TeamPost, error)
	DeletePost(id, authorID string) error
	GetPostCount() (int, error)
}
