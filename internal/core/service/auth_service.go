package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/policy"
	"github.com/campushub/user-directory/internal/core/ports"
)

// AuthService implements password login. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
type AuthService struct {
	repo   ports.UserRepository
	minter *TokenMinter
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, minter *TokenMinter, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, minter: minter, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, policy.View, error) {
	if username == "" || password == "" {
		return "", policy.View{}, domain.ErrInvalidLogin
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", policy.View{}, domain.ErrInvalidLogin
		}
		return "", policy.View{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login rejected")
		return "", policy.View{}, domain.ErrInvalidLogin
	}

	token, err := s.minter.Mint(user)
	if err != nil {
		return "", policy.View{}, err
	}

	return token, policy.Redact(policy.Caller{Subject: user.ID}, user), nil
}
