package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination_Defaults(t *testing.T) {
	p := NewPagination(0, 0)

	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, 0, p.Skip)
}

func TestNewPagination_Skip(t *testing.T) {
	p := NewPagination(20, 3)

	assert.Equal(t, 40, p.Skip)
}

func TestPagination_WithTotal(t *testing.T) {
	tests := []struct {
		total int64
		pages int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
	}

	for _, tt := range tests {
		p := NewPagination(10, 1).WithTotal(tt.total)
		assert.Equal(t, tt.pages, p.TotalPages, "total=%d", tt.total)
		assert.Equal(t, tt.total, p.TotalCount)
	}
}

func TestTaskEnums_Valid(t *testing.T) {
	assert.True(t, TaskStatusTodo.Valid())
	assert.False(t, TaskStatus("ARCHIVED").Valid())
	assert.True(t, TaskPriorityNormal.Valid())
	assert.False(t, TaskPriority("URGENT").Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, RoleName("GUEST").Valid())
}
