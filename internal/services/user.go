package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/teamsync-api/internal/apperrors"
	"github.com/dimitrije/teamsync-api/internal/database"
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/oauth"
	"github.com/dimitrije/teamsync-api/internal/observability"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const userColumns = `id, email, name, profile_picture, password_hash, provider, provider_id,
	current_workspace_id, last_login, created_at, updated_at`

type UserService struct {
	db         *database.DB
	metrics    *observability.Metrics
	bcryptCost int
}

func NewUserService(db *database.DB, metrics *observability.Metrics) *UserService {
	return &UserService{db: db, metrics: metrics, bcryptCost: bcrypt.DefaultCost}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.ProfilePicture, &u.PasswordHash, &u.Provider, &u.ProviderID,
		&u.CurrentWorkspaceID, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates an email account together with its default workspace.
// The user, the workspace, the owner membership and the current workspace
// pointer are written in one transaction.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, *models.Workspace, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	start := time.Now()
	var user *models.User
	var workspace *models.Workspace
	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
		`, email).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return apperrors.BadRequest("email already exists")
		}

		user, err = scanUser(tx.QueryRow(ctx, `
			INSERT INTO users (email, name, password_hash, provider, provider_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+userColumns,
			email, name, passwordHash, models.ProviderEmail, email))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return apperrors.BadRequest("email already exists")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		workspace, err = createOwnedWorkspace(ctx, tx, user.ID, defaultWorkspaceName, defaultWorkspaceDescription(name))
		if err != nil {
			return err
		}
		user.CurrentWorkspaceID = &workspace.ID
		return nil
	})
	s.metrics.ObserveProtocol("bootstrap", start, err)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Warn("registration failed")
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"workspace_id": workspace.ID,
	}).Info("user registered")
	return user, workspace, nil
}

// Login verifies an email account's password and stamps last_login.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE email = $1 AND provider = $2
	`, email, models.ProviderEmail))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) touchLastLogin(ctx context.Context, user *models.User) error {
	var lastLogin time.Time
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET last_login = NOW() WHERE id = $1
		RETURNING last_login
	`, user.ID).Scan(&lastLogin)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &lastLogin
	return nil
}

// FindOrCreateFromOAuth returns the user linked to the provider identity.
// On first login the account is created together with its default
// workspace, exactly as Register does.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET email = $1, name = $2, profile_picture = COALESCE($3, profile_picture),
		    last_login = NOW(), updated_at = NOW()
		WHERE provider = $4 AND provider_id = $5
		RETURNING `+userColumns,
		info.Email, info.Name, nullableString(info.PictureURL), info.Provider, info.ID))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	start := time.Now()
	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		user, err = scanUser(tx.QueryRow(ctx, `
			INSERT INTO users (email, name, profile_picture, provider, provider_id, last_login)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING `+userColumns,
			info.Email, info.Name, nullableString(info.PictureURL), info.Provider, info.ID))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return apperrors.BadRequest("an account with this email already exists")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		workspace, err := createOwnedWorkspace(ctx, tx, user.ID, defaultWorkspaceName, defaultWorkspaceDescription(info.Name))
		if err != nil {
			return err
		}
		user.CurrentWorkspaceID = &workspace.ID
		return nil
	})
	s.metrics.ObserveProtocol("bootstrap", start, err)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"provider":     info.Provider,
		"workspace_id": *user.CurrentWorkspaceID,
	}).Info("user created from oauth login")
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, name string, profilePicture *string) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, profile_picture = COALESCE($2, profile_picture), updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns,
		name, profilePicture, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetCurrentWorkspace moves the user's current workspace pointer. Callers
// must have resolved the user's membership in workspaceID first.
func (s *UserService) SetCurrentWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET current_workspace_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		workspaceID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set current workspace: %w", err)
	}
	return user, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
