package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClubsCommandParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"bare listing", nil, false},
		{"create without club", []string{"-create", "Slow readers"}, false},
		{"progress needs club", []string{"-progress", "42"}, true},
		{"comment needs club", []string{"-comment", "Loved it"}, true},
		{"rename needs club", []string{"-rename", "Fast readers"}, true},
		{"add-member needs club", []string{"-add-member", "user-1"}, true},
		{"set-role needs club", []string{"-set-role", "user-1", "-role", "moderator"}, true},
		{"remove-member needs club", []string{"-remove-member", "user-1"}, true},
		{"comments need club", []string{"-comments"}, true},
		{"progress with club", []string{"-club", "club-1", "-progress", "42"}, false},
		{"membership change with club", []string{"-club", "club-1", "-set-role", "user-1", "-role", "moderator"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewClubsCommand()
			err := cmd.ParseFlags(tt.args)
			if tt.wantErr {
				assert.ErrorContains(t, err, "-club")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
