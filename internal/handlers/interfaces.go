package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/oauth"
	"github.com/dimitrije/teamsync-api/internal/services"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, name, password string) (*models.User, *models.Workspace, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string, profilePicture *string) (*models.User, error)
	SetCurrentWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// AuthorizerInterface resolves the caller's role in a workspace and checks
// the required permissions against it.
type AuthorizerInterface interface {
	Authorize(ctx context.Context, userID, workspaceID uuid.UUID, required ...models.Permission) (*models.Role, error)
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string, description *string) (*models.Workspace, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MemberWorkspace, error)
	GetWithMembers(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, []models.Member, error)
	Update(ctx context.Context, workspaceID uuid.UUID, name string, description *string) (*models.Workspace, error)
	Delete(ctx context.Context, workspaceID, requesterID uuid.UUID) (*uuid.UUID, error)
	GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.Member, []models.Role, error)
	ChangeMemberRole(ctx context.Context, workspaceID, memberUserID, roleID uuid.UUID) (*models.Member, error)
	RemoveMember(ctx context.Context, workspaceID, memberUserID uuid.UUID) error
	JoinByInviteCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Workspace, models.RoleName, error)
	ResetInviteCode(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	Analytics(ctx context.Context, workspaceID uuid.UUID) (*models.TaskAnalytics, error)
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, workspaceID, userID uuid.UUID, name string, emoji, description *string) (*models.Project, error)
	List(ctx context.Context, workspaceID uuid.UUID, pageSize, pageNumber int) ([]models.Project, models.Pagination, error)
	GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error)
	Analytics(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.TaskAnalytics, error)
	Update(ctx context.Context, workspaceID, projectID uuid.UUID, name string, emoji, description *string) (*models.Project, error)
	Delete(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, workspaceID, projectID, userID uuid.UUID, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, workspaceID, projectID, taskID uuid.UUID, in models.TaskInput) (*models.Task, error)
	GetByID(ctx context.Context, workspaceID, projectID, taskID uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, workspaceID, taskID uuid.UUID) error
	List(ctx context.Context, workspaceID uuid.UUID, filter models.TaskFilter, pageSize, pageNumber int) ([]models.Task, models.Pagination, error)
}
