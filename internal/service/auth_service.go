package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teachings-api/internal/model"
	"teachings-api/pkg/apierror"
)

const defaultRole = "member"

// AuthService owns the whole token lifecycle: credential hashing, token
// issuance, verification and refresh. Tokens are stateless HS256 JWTs;
// nothing is persisted beyond the user record itself.
type AuthService struct {
	users  UserStore
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewAuthService(users UserStore, secret string, issuer string, ttl time.Duration) (*AuthService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}

	return &AuthService{users: users, secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

func (s *AuthService) Signup(ctx context.Context, name string, email string, password string) (model.UserSummary, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return model.UserSummary{}, apierror.BadRequest("name, email and password are required", "")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.UserSummary{}, model.ErrUserAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.UserSummary{}, err
	}

	// bcrypt embeds a random salt per hash; the plaintext never leaves
	// this function.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.UserSummary{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         defaultRole,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.UserSummary{}, err
	}

	return user.Summary(), nil
}

// Login verifies credentials and mints a token. Unknown email and wrong
// password return the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{Token: token, User: user.Summary()}, nil
}

// Refresh reissues a token with a fresh validity window. The signature must
// verify but expiry is deliberately ignored: an expired token is exactly
// what a client brings here.
func (s *AuthService) Refresh(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.Parse(tokenString, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", model.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", model.ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", model.ErrInvalidToken
	}

	return s.issueToken(subject)
}

// Verify checks signature and expiry and returns the identity claims. The
// route guard calls this on every protected request.
func (s *AuthService) Verify(tokenString string) (*model.AuthClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := parser.Parse(tokenString, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = int64(iat)
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.Expiry = int64(exp)
	}

	if claims.UserID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.UserSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.UserSummary{}, err
	}
	return user.Summary(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	return s.users.List(ctx)
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iss": s.issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
