package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"vendordesk/internal/auth"
	"vendordesk/internal/model"
	"vendordesk/internal/repository"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
}

// AuthService covers login, self-registration and token checks.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Register creates a viewer account and its empty team member entry together.
	Register(ctx context.Context, email, password, name string) (*model.UserProfile, error)
	Me(ctx context.Context, userID int64) (*model.UserProfile, error)
	// Authenticate verifies a bearer token. An empty token is ErrUnauthenticated,
	// a bad or expired one ErrForbidden.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	// CompleteSetup sets the first admin password using the setup token
	// EnsureAdmin logged. It works once: afterwards the admin has a password.
	CompleteSetup(ctx context.Context, token, password string) error
}

type authService struct {
	store  repository.Store
	tokens *auth.TokenManager
	log    zerolog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(store repository.Store, tokens *auth.TokenManager, log zerolog.Logger) AuthService {
	return &authService{
		store:  store,
		tokens: tokens,
		log:    log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, validationError(MsgLoginRequired)
	}

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	u := findUserByEmail(users, email)
	// Unknown email and wrong password are indistinguishable to the caller.
	if u == nil || !auth.CheckPassword(u.PasswordHash, password) {
		s.logger(ctx).Info().Str("event", "login_failed").Msg("invalid credentials")
		return nil, newError(ErrInvalidCredentials, MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	s.logger(ctx).Info().Str("event", "login").Int64("user_id", u.ID).Msg("user logged in")
	return &LoginResult{Token: token, User: u.Profile()}, nil
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*model.UserProfile, error) {
	if email == "" || password == "" || name == "" {
		return nil, validationError(MsgRegisterRequired)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *model.User
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if findUserByEmail(users, email) != nil {
			return conflictError(MsgEmailInUse)
		}

		now := time.Now().UTC()
		created, err = tx.Users().Create(ctx, &model.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Role:         model.RoleViewer,
			CreatedAt:    now,
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return conflictError(MsgEmailInUse)
			}
			return fmt.Errorf("create user: %w", err)
		}

		if _, err := tx.TeamMembers().Create(ctx, &model.TeamMember{UserID: created.ID, CreatedAt: now}); err != nil {
			return fmt.Errorf("create team member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger(ctx).Info().Str("event", "register").Int64("user_id", created.ID).Msg("user registered")
	p := created.Profile()
	return &p, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.UserProfile, error) {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError(MsgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	p := u.Profile()
	return &p, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, newError(ErrUnauthenticated, MsgNoToken)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger(ctx).Debug().Err(err).Msg("token rejected")
		return nil, newError(ErrForbidden, MsgInvalidToken)
	}
	return claims, nil
}

func findUserByEmail(users []model.User, email string) *model.User {
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}

// SetupTokenTTL bounds how long a logged setup token stays usable.
const SetupTokenTTL = 24 * time.Hour

// AdminSeed holds the credentials for the first-run administrator.
// An empty Password leaves the account locked until setup is completed
// with the logged one-time token.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin creates the administrator account and its team member entry
// when no user holds the admin role. While the admin has no password, every
// start logs a fresh setup token; the password itself is never logged.
func EnsureAdmin(ctx context.Context, store repository.Store, tokens *auth.TokenManager, seed AdminSeed, log zerolog.Logger) error {
	log = log.With().Str("component", "bootstrap").Logger()

	if seed.Email == "" {
		return errors.New("admin email is required")
	}
	if seed.Name == "" {
		seed.Name = "Admin User"
	}

	var hash string
	if seed.Password != "" {
		h, err := auth.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	var admin *model.User
	created := false
	err := store.WithinTx(ctx, func(tx repository.Store) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		for i := range users {
			if users[i].Role == model.RoleAdmin {
				admin = &users[i]
				break
			}
		}
		if admin != nil {
			// A configured password finishes a pending setup.
			if admin.PasswordHash == "" && hash != "" {
				if err := tx.Users().UpdatePassword(ctx, admin.ID, hash); err != nil {
					return fmt.Errorf("set admin password: %w", err)
				}
				admin.PasswordHash = hash
			}
			return nil
		}
		if findUserByEmail(users, seed.Email) != nil {
			return fmt.Errorf("admin email %q is already used by a non-admin account", seed.Email)
		}

		now := time.Now().UTC()
		admin, err = tx.Users().Create(ctx, &model.User{
			Email:        seed.Email,
			PasswordHash: hash,
			Name:         seed.Name,
			Role:         model.RoleAdmin,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		title, dept := "System Administrator", "IT"
		_, err = tx.TeamMembers().Create(ctx, &model.TeamMember{
			UserID:     admin.ID,
			Title:      &title,
			Department: &dept,
			CreatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("create admin team member: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return err
	}

	if created {
		log.Info().Str("event", "admin_seeded").Int64("user_id", admin.ID).Str("email", admin.Email).Msg("created initial admin account")
	}
	if admin.PasswordHash != "" {
		if !created {
			log.Debug().Msg("admin account present, nothing to seed")
		}
		return nil
	}

	token, err := tokens.IssueSetup(admin.ID, SetupTokenTTL)
	if err != nil {
		return fmt.Errorf("issue setup token: %w", err)
	}
	log.Warn().
		Str("event", "admin_setup_pending").
		Str("email", admin.Email).
		Str("setup_token", token).
		Str("expires_in", SetupTokenTTL.String()).
		Msg("admin has no password; POST the setup token and a new password to /api/auth/setup")
	return nil
}

func (s *authService) CompleteSetup(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return validationError(MsgSetupRequired)
	}
	claims, err := s.tokens.VerifySetup(token)
	if err != nil {
		s.logger(ctx).Debug().Err(err).Msg("setup token rejected")
		return newError(ErrForbidden, MsgInvalidToken)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		u, err := tx.Users().FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(ErrForbidden, MsgSetupCompleted)
			}
			return fmt.Errorf("find user: %w", err)
		}
		if u.Role != model.RoleAdmin || u.PasswordHash != "" {
			return newError(ErrForbidden, MsgSetupCompleted)
		}
		if err := tx.Users().UpdatePassword(ctx, u.ID, hash); err != nil {
			return fmt.Errorf("set admin password: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger(ctx).Info().Str("event", "admin_setup_completed").Int64("user_id", claims.UserID).Msg("admin password set")
	return nil
}

func (s *authService) logger(ctx context.Context) *zerolog.Logger {
	return scopedLogger(ctx, s.log, "auth")
}
