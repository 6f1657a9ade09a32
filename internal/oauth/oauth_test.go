package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	require.NoError(t, err)
	second, err := GenerateState()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, first, 43)
	assert.NotContains(t, first, "=")
}

func TestUserInfo_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      UserInfo
		email   string
		display string
		err     error
	}{
		{
			name:    "keeps name",
			in:      UserInfo{ID: "1", Email: " Jane@Example.com ", Name: "Jane Doe"},
			email:   "jane@example.com",
			display: "Jane Doe",
		},
		{
			name:    "falls back to local part",
			in:      UserInfo{ID: "1", Email: "jane.doe@example.com", Name: "  "},
			email:   "jane.doe@example.com",
			display: "jane.doe",
		},
		{name: "missing id", in: UserInfo{Email: "jane@example.com"}, err: ErrIncompleteProfile},
		{name: "missing email", in: UserInfo{ID: "1"}, err: ErrIncompleteProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.in
			err := info.normalize()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, info.Email)
			assert.Equal(t, tt.display, info.Name)
		})
	}
}
