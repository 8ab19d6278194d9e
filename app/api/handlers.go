package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ccuhub/compscout/app/auth"
	"github.com/ccuhub/compscout/app/calendar"
	"github.com/ccuhub/compscout/app/catalog"
	"github.com/ccuhub/compscout/app/database"
	"github.com/ccuhub/compscout/app/enrichment"
)

func NewHandler(store *catalog.Store, filterer *catalog.Filterer,
	favorites database.FavoriteRepository, posts database.PostRepository,
	authService *auth.Service, enricher *enrichment.Client) *Handler {
	return &Handler{
		store:       store,
		filterer:    filterer,
		generator:   calendar.NewGenerator(),
		favorites:   favorites,
		posts:       posts,
		authService: authService,
		enricher:    enricher,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":    time.Now().In(time.Local).Format(time.RFC3339),
		"competitions": h.store.Count(),
	}

	if refreshedAt := h.store.RefreshedAt(); refreshedAt != nil {
		health["refreshed_at"] = refreshedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

// ListCompetitions returns the visible, ordered competition list for
// the given filter criteria. favorites=true scopes to the session
// user's favorites and therefore requires a session.
func (h *Handler) ListCompetitions(c *gin.Context) {
	criteria := catalog.Criteria{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Sort:     c.Query("sort"),
	}

	favoritesOnly := c.Query("favorites") == "true"
	var favoriteSet map[string]bool
	if favoritesOnly {
		userID, ok := h.sessionUser(c)
		if !ok {
			return
		}
		set, err := h.favoriteSet(userID)
		if err != nil {
			slog.Error("Database error", "operation", "get_favorites", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		favoriteSet = set
	}

	visible := h.filterer.Run(h.store.All(), favoriteSet, favoritesOnly, criteria)

	c.JSON(http.StatusOK, gin.H{
		"competitions": visible,
		"total":        len(visible),
	})
}

func (h *Handler) GetCompetition(c *gin.Context) {
	record, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	user, token, err := h.authService.Login(req.Email)
	if errors.Is(err, auth.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "查無此帳號，請先註冊"})
		return
	}
	if err != nil {
		slog.Error("Login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  presentUser(user, true),
		"token": token,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Department)
	if errors.Is(err, auth.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "此信箱已註冊過"})
		return
	}
	if err != nil {
		slog.Error("Registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  presentUser(user, true),
		"token": token,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, presentUser(user, true))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	user, err := h.authService.UpdateProfile(userID, req.Bio, req.Skills, req.PortfolioURL)
	if err != nil {
		slog.Error("Database error", "operation", "update_profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, presentUser(user, true))
}

func (h *Handler) GetPublicProfile(c *gin.Context) {
	user, err := h.authService.GetUser(c.Param("id"))
	if errors.Is(err, auth.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, presentUser(user, false))
}

// ToggleFavorite flips the favorite state of one competition for the
// session user. The whole flip is a single transaction.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	competitionID := c.Param("id")
	if _, exists := h.store.Get(competitionID); !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}

	favorited, err := h.favorites.Toggle(userID, competitionID)
	if err != nil {
		slog.Error("Database error", "operation", "toggle_favorite", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        competitionID,
		"favorited": favorited,
	})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	ids, err := h.favorites.GetFavoriteIDs(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if ids == nil {
		ids = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}

// ExportFavorites renders the favorites-scoped visible list as an
// iCalendar download. The current filter criteria apply, so the export
// matches what the user sees.
func (h *Handler) ExportFavorites(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	favoriteSet, err := h.favoriteSet(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_favorites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	criteria := catalog.Criteria{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Sort:     c.Query("sort"),
	}
	visible := h.filterer.Run(h.store.All(), favoriteSet, true, criteria)

	ics, err := h.generator.Run(visible)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "目前沒有可匯出的收藏賽事"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="my_competitions.ics"`)
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.String(http.StatusOK, ics)
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.GetPosts()
	if err != nil {
		slog.Error("Database error", "operation", "get_posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, presentPost(post))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": views,
		"total": len(views),
	})
}

func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competitionName and roleNeeded are required"})
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	post := database.TeamPost{
		ID:              uuid.New().String(),
		AuthorID:        user.ID,
		AuthorName:      user.Name,
		AuthorDept:      user.Department,
		CompetitionName: req.CompetitionName,
		RoleNeeded:      req.RoleNeeded,
		Description:     req.Description,
		Tags:            req.Tags,
	}
	if err := h.posts.CreatePost(post); err != nil {
		slog.Error("Database error", "operation", "create_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	created, err := h.posts.GetPostByID(post.ID)
	if err != nil || created == nil {
		slog.Error("Database error", "operation", "get_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, presentPost(*created))
}

func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := h.sessionUser(c)
	if !ok {
		return
	}

	postID := c.Param("id")
	post, err := h.posts.GetPostByID(postID)
	if err != nil {
		slog.Error("Database error", "operation", "get_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "只有貼文作者可以刪除"})
		return
	}

	if err := h.posts.DeletePost(postID, userID); err != nil {
		slog.Error("Database error", "operation", "delete_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": postID})
}

// ContactPostAuthor returns a ready-made mailto payload for reaching
// the post's author.
func (h *Handler) ContactPostAuthor(c *gin.Context) {
	if _, ok := h.sessionUser(c); !ok {
		return
	}

	post, err := h.posts.GetPostByID(c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": fmt.Sprintf("想與你組隊：%s", post.CompetitionName),
		"body":    fmt.Sprintf("Hi %s, 我對你的徵人貼文有興趣！", post.AuthorName),
	})
}

// AnalyzeCompetition returns AI advisory prose for one competition.
// The response carries the record id it was issued for so clients can
// discard completions that arrive after the selection changed.
func (h *Handler) AnalyzeCompetition(c *gin.Context) {
	record, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Competition not found"})
		return
	}

	text := h.enricher.Analyze(c.Request.Context(), record.Name, record.Summary)

	c.JSON(http.StatusOK, gin.H{
		"id":   record.ID,
		"text": text,
	})
}

// Search runs a grounded competition search. Failures degrade to the
// fixed fallback text with no links rather than an error status.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.enricher.Search(c.Request.Context(), req.Query)
	if err != nil {
		slog.Warn("Grounded search failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"query": req.Query,
		"text":  result.Text,
		"links": result.Links,
	})
}

// sessionUser reads the user id placed by the session middleware. For
// routes outside the authed group it enforces the same 401 contract.
func (h *Handler) sessionUser(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return "", false
	}
	return userID, true
}

func (h *Handler) favoriteSet(userID string) (map[string]bool, error) {
	ids, err := h.favorites.GetFavoriteIDs(userID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
