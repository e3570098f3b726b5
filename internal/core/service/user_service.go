package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/user-directory/internal/api/metrics"
	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/policy"
	"github.com/campushub/user-directory/internal/core/ports"
)

// AuditSink is the interface the service uses to emit directory events.
// Enqueueing never blocks the mutating request on audit persistence.
type AuditSink interface {
	Enqueue(event ports.DirectoryEventInput)
}

// UserService implements the directory use cases on top of the policy
// package. All privilege decisions are delegated to policy; this type only
// orchestrates collaborators.
type UserService struct {
	repo   ports.UserRepository
	oracle policy.RoleOracle
	minter *TokenMinter
	audit  AuditSink
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, oracle policy.RoleOracle, minter *TokenMinter, audit AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, oracle: oracle, minter: minter, audit: audit, logger: logger}
}

// resolveCaller turns a request identity into a fully resolved caller.
// Absent and invalid credentials are both rejected; the distinction only
// matters on the create-admin path, which consumes the identity directly.
func (s *UserService) resolveCaller(ctx context.Context, ident policy.Identity) (policy.Caller, error) {
	switch ident.State {
	case policy.IdentityAbsent:
		return policy.Caller{}, domain.ErrCredentialRequired
	case policy.IdentityInvalid:
		return policy.Caller{}, domain.ErrInvalidCredential
	}

	isAdmin, err := s.oracle.HasRole(ctx, ident.Subject, domain.RoleAdmin)
	if err != nil {
		return policy.Caller{}, err
	}
	return policy.Caller{Subject: ident.Subject, Admin: isAdmin}, nil
}

// List returns the redacted views of all records.
func (s *UserService) List(ctx context.Context, ident policy.Identity) ([]policy.View, error) {
	caller, err := s.resolveCaller(ctx, ident)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	views := make([]policy.View, 0, len(users))
	for _, u := range users {
		views = append(views, policy.Redact(caller, u))
	}
	return views, nil
}

// Get returns the redacted view of one record.
func (s *UserService) Get(ctx context.Context, ident policy.Identity, id string) (policy.View, error) {
	caller, err := s.resolveCaller(ctx, ident)
	if err != nil {
		return policy.View{}, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return policy.View{}, err
	}
	return policy.Redact(caller, u), nil
}

// Create registers a new user record and issues a session token for it.
// The requested role is normalized first; minting an admin is guarded by
// the creation policy, then completeness and conflicts are checked in order.
func (s *UserService) Create(ctx context.Context, ident policy.Identity, in ports.CreateUserInput) (*ports.CreateUserResult, error) {
	role := domain.ParseRole(in.Role)

	if err := policy.AuthorizeCreate(ctx, role, ident, s.oracle); err != nil {
		observeDenied(err)
		return nil, err
	}

	proposed := policy.CreateInput{
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		Role:       role,
		Phone:      in.Phone,
		Department: in.Department,
		Class:      in.Class,
		RealName:   in.RealName,
		StudentID:  in.StudentID,
	}

	if err := policy.CheckComplete(proposed); err != nil {
		return nil, err
	}
	if err := policy.CheckConflicts(ctx, s.repo, proposed); err != nil {
		observeConflict(err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		Role:         role,
		Phone:        in.Phone,
		Department:   in.Department,
		Class:        in.Class,
		RealName:     in.RealName,
		StudentID:    in.StudentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		observeConflict(err)
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	token, err := s.minter.Mint(created)
	if err != nil {
		return nil, err
	}

	s.emit(created.ID, domain.ActionCreated, ident.Subject)
	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")

	// The creator of a record always sees its full self view.
	view := policy.Redact(policy.Caller{Subject: created.ID}, created)
	return &ports.CreateUserResult{User: view, Token: token}, nil
}

// Update applies a partial change set to a record. Authorization runs
// before the target lookup, so a denied caller learns nothing about whether
// the target exists.
func (s *UserService) Update(ctx context.Context, ident policy.Identity, id string, in ports.UpdateUserInput) (policy.View, error) {
	caller, err := s.resolveCaller(ctx, ident)
	if err != nil {
		return policy.View{}, err
	}

	sanitized, err := policy.AuthorizeUpdate(caller, id, policy.Changes{
		Username:   in.Username,
		Password:   in.Password,
		Email:      in.Email,
		Role:       in.Role,
		Phone:      in.Phone,
		Department: in.Department,
		Class:      in.Class,
		RealName:   in.RealName,
		StudentID:  in.StudentID,
	})
	if err != nil {
		observeDenied(err)
		return policy.View{}, err
	}

	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return policy.View{}, err
	}

	// A request with no password field leaves the stored hash untouched.
	var passwordHash string
	if sanitized.Password != nil && *sanitized.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*sanitized.Password), bcrypt.DefaultCost)
		if err != nil {
			return policy.View{}, err
		}
		passwordHash = string(hash)
	}

	policy.Merge(target, sanitized, passwordHash)
	target.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, target)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return policy.View{}, err
	}

	s.emit(updated.ID, domain.ActionUpdated, caller.Subject)
	s.logger.Info().Str("user_id", updated.ID).Str("actor", caller.Subject).Msg("user updated")

	return policy.Redact(caller, updated), nil
}

// Delete removes a record. Admin-only; a missing target reports not found.
func (s *UserService) Delete(ctx context.Context, ident policy.Identity, id string) error {
	caller, err := s.resolveCaller(ctx, ident)
	if err != nil {
		return err
	}

	if err := policy.AuthorizeDelete(caller); err != nil {
		observeDenied(err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(id, domain.ActionDeleted, caller.Subject)
	s.logger.Info().Str("user_id", id).Str("actor", caller.Subject).Msg("user deleted")
	return nil
}

func (s *UserService) emit(userID string, action domain.DirectoryAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.DirectoryEventInput{
		UserID:    userID,
		Action:    string(action),
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})
}

func observeDenied(err error) {
	switch {
	case errors.Is(err, domain.ErrCredentialRequired):
		metrics.AuthDeniedTotal.WithLabelValues("credential_required").Inc()
	case errors.Is(err, domain.ErrInvalidCredential):
		metrics.AuthDeniedTotal.WithLabelValues("invalid_credential").Inc()
	case errors.Is(err, domain.ErrInsufficientPermission):
		metrics.AuthDeniedTotal.WithLabelValues("insufficient_permission").Inc()
	}
}

func observeConflict(err error) {
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		metrics.ConflictsTotal.WithLabelValues(ce.Field).Inc()
	}
}
