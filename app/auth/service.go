package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ccuhub/compscout/app/database"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidToken = errors.New("invalid token")
)

const tokenTTL = 7 * 24 * time.Hour

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Service owns accounts and their session tokens. Tokens are stateless
// HS256 JWTs; logout is a client-side discard.
type Service struct {
	users  database.UserRepository
	secret []byte
}

func NewService(users database.UserRepository, secret string) *Service {
	return &Service{users: users, secret: []byte(secret)}
}

// Login resolves an account by email and issues a session token.
func (s *Service) Login(email string) (*database.User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", fmt.Errorf("email is required")
	}

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Register creates an account and issues a session token. The email is
// the identity; registering a taken email fails without side effects.
func (s *Service) Register(name, email, department string) (*database.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("name and email are required")
	}

	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	user := database.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Department: strings.TrimSpace(department),
		Skills:     []string{},
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, "", err
	}

	created, err := s.users.GetUserByID(user.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

func (s *Service) GetUser(id string) (*database.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) UpdateProfile(id string, bio string, skills []string, portfolioURL string) (*database.User, error) {
	if err := s.users.UpdateProfile(id, bio, skills, portfolioURL); err != nil {
		return nil, err
	}
	return s.GetUser(id)
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.New().String(),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the user id it was
// issued for.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
