package api

import (
	"time"

	"github.com/ccuhub/compscout/app/auth"
	"github.com/ccuhub/compscout/app/calendar"
	"github.com/ccuhub/compscout/app/catalog"
	"github.com/ccuhub/compscout/app/database"
	"github.com/ccuhub/compscout/app/enrichment"
)

type Handler struct {
	store       *catalog.Store
	filterer    *catalog.Filterer
	generator   *calendar.Generator
	favorites   database.FavoriteRepository
	posts       database.PostRepository
	authService *auth.Service
	enricher    *enrichment.Client
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
}

type registerRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Department string `json:"department"`
}

type profileUpdateRequest struct {
	Bio          string   `json:"bio"`
	Skills       []string `json:"skills"`
	PortfolioURL string   `json:"portfolioUrl"`
}

type createPostRequest struct {
	CompetitionName string   `json:"competitionName" binding:"required"`
	RoleNeeded      string   `json:"roleNeeded" binding:"required"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

type userView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Department   string   `json:"department"`
	Skills       []string `json:"skills"`
	Bio          string   `json:"bio"`
	PortfolioURL string   `json:"portfolioUrl"`
}

type postView struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"authorId"`
	AuthorName      string    `json:"authorName"`
	AuthorDept      string    `json:"authorDept"`
	CompetitionName string    `json:"competitionName"`
	RoleNeeded      string    `json:"roleNeeded"`
	Description     string    `json:"description"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"createdAt"`
}

// presentUser renders an account for API responses. Email is included
// only for the account owner.
func presentUser(user *database.User, includeEmail bool) userView {
	view := userView{
		ID:           user.ID,
		Name:         user.Name,
		Department:   user.Department,
		Skills:       user.Skills,
		Bio:          user.Bio,
		PortfolioURL: user.PortfolioURL,
	}
	if includeEmail {
		view.Email = user.Email
	}
	if view.Skills == nil {
		view.Skills = []string{}
	}
	return view
}

func presentPost(post database.TeamPost) postView {
	view := postView{
		ID:              post.ID,
		AuthorID:        post.AuthorID,
		AuthorName:      post.AuthorName,
		AuthorDept:      post.AuthorDept,
		CompetitionName: post.CompetitionName,
		RoleNeeded:      post.RoleNeeded,
		Description:     post.Description,
		Tags:            post.Tags,
		CreatedAt:       post.CreatedAt,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}
	return view
}
