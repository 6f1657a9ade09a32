package handlers

import (
	"github.com/dimitrije/teamsync-api/internal/models"
	"github.com/dimitrije/teamsync-api/pkg/dto"
)

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		ProfilePicture:     u.ProfilePicture,
		Provider:           u.Provider,
		CurrentWorkspaceID: u.CurrentWorkspaceID,
		LastLogin:          u.LastLogin,
	}
}

func toWorkspaceResponse(w *models.Workspace, role models.RoleName) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		OwnerID:     w.OwnerID,
		InviteCode:  w.InviteCode,
		Role:        string(role),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toMemberResponse(m *models.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		RoleID:   m.RoleID,
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		resp.Name = m.User.Name
		resp.Email = m.User.Email
		resp.ProfilePicture = m.User.ProfilePicture
	}
	if m.Role != nil {
		resp.Role = string(m.Role.Name)
	}
	return resp
}

func toMemberResponses(members []models.Member) []dto.MemberResponse {
	resp := make([]dto.MemberResponse, len(members))
	for i := range members {
		resp[i] = toMemberResponse(&members[i])
	}
	return resp
}

func toAnalyticsResponse(a *models.TaskAnalytics) dto.AnalyticsResponse {
	return dto.AnalyticsResponse{
		TotalTasks:     a.TotalTasks,
		OverdueTasks:   a.OverdueTasks,
		CompletedTasks: a.CompletedTasks,
	}
}

func toProjectResponse(p *models.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Emoji:       p.Emoji,
		WorkspaceID: p.WorkspaceID,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toTaskResponse(t *models.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		TaskCode:    t.TaskCode,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ProjectID:   t.ProjectID,
		WorkspaceID: t.WorkspaceID,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toPaginationResponse(p models.Pagination) dto.PaginationResponse {
	return dto.PaginationResponse{
		TotalCount: p.TotalCount,
		PageSize:   p.PageSize,
		PageNumber: p.PageNumber,
		TotalPages: p.TotalPages,
		Skip:       p.Skip,
	}
}
