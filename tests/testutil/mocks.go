package testutil

import (
	"context"
	"time"

	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/internal/oauth"
	"github.com/dimitrije/teamsync-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*models.User, *models.Workspace, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.Workspace), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string, profilePicture *string) (*models.User, error) {
	args := m.Called(ctx, id, name, profilePicture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetCurrentWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockAuthorizer mocks rbac.Resolver's Authorize
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, userID, workspaceID uuid.UUID, required ...models.Permission) (*models.Role, error) {
	args := m.Called(ctx, userID, workspaceID, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, ownerID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MemberWorkspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberWorkspace), args.Error(1)
}

func (m *MockWorkspaceService) GetWithMembers(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, []models.Member, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Workspace), args.Get(1).([]models.Member), args.Error(2)
}

func (m *MockWorkspaceService) Update(ctx context.Context, workspaceID uuid.UUID, name string, description *string) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, workspaceID, requesterID uuid.UUID) (*uuid.UUID, error) {
	args := m.Called(ctx, workspaceID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}

func (m *MockWorkspaceService) GetMembers(ctx context.Context, workspaceID uuid.UUID) ([]models.Member, []models.Role, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Member), args.Get(1).([]models.Role), args.Error(2)
}

func (m *MockWorkspaceService) ChangeMemberRole(ctx context.Context, workspaceID, memberUserID, roleID uuid.UUID) (*models.Member, error) {
	args := m.Called(ctx, workspaceID, memberUserID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, memberUserID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, memberUserID)
	return args.Error(0)
}

func (m *MockWorkspaceService) JoinByInviteCode(ctx context.Context, userID uuid.UUID, inviteCode string) (*models.Workspace, models.RoleName, error) {
	args := m.Called(ctx, userID, inviteCode)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Workspace), args.Get(1).(models.RoleName), args.Error(2)
}

func (m *MockWorkspaceService) ResetInviteCode(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Analytics(ctx context.Context, workspaceID uuid.UUID) (*models.TaskAnalytics, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskAnalytics), args.Error(1)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, workspaceID, userID uuid.UUID, name string, emoji, description *string) (*models.Project, error) {
	args := m.Called(ctx, workspaceID, userID, name, emoji, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, workspaceID uuid.UUID, pageSize, pageNumber int) ([]models.Project, models.Pagination, error) {
	args := m.Called(ctx, workspaceID, pageSize, pageNumber)
	if args.Get(0) == nil {
		return nil, models.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Project), args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockProjectService) GetByID(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Analytics(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.TaskAnalytics, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskAnalytics), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, workspaceID, projectID uuid.UUID, name string, emoji, description *string) (*models.Project, error) {
	args := m.Called(ctx, workspaceID, projectID, name, emoji, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, workspaceID, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, workspaceID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, workspaceID, projectID, userID uuid.UUID, in models.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, workspaceID, projectID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, workspaceID, projectID, taskID uuid.UUID, in models.TaskInput) (*models.Task, error) {
	args := m.Called(ctx, workspaceID, projectID, taskID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, workspaceID, projectID, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, workspaceID, projectID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, workspaceID, taskID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, taskID)
	return args.Error(0)
}

func (m *MockTaskService) List(ctx context.Context, workspaceID uuid.UUID, filter models.TaskFilter, pageSize, pageNumber int) ([]models.Task, models.Pagination, error) {
	args := m.Called(ctx, workspaceID, filter, pageSize, pageNumber)
	if args.Get(0) == nil {
		return nil, models.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Task), args.Get(1).(models.Pagination), args.Error(2)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
