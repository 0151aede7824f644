package commands

import (
	"context"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

func TestStapleOperationCommand(t *testing.T) {
	tests := []struct {
		name          string
		directive     string
		wantRemoved   int
		wantGenerated int
		wantStaples   int
		wantRetained  []domain.StrandID
	}{
		{"delete all", "delete", 2, 0, 0, nil},
		{"delete retaining color 5", "delete,retain=5", 1, 0, 1, []domain.StrandID{1}},
		{"maximal set", "maximal_set", 2, 2, 2, nil},
		{"maximal set retaining both", "maximal_set,retain=[5,7]", 0, 0, 2, []domain.StrandID{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildPair(t)

			res, err := NewStapleOperationCommand(s, tt.directive, testr.New(t)).Execute(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, res.Removed)
			assert.Equal(t, tt.wantGenerated, res.Generated)
			assert.Equal(t, tt.wantRetained, res.Retained)
			assert.Len(t, s.Staples(), tt.wantStaples)
			assert.Len(t, s.Scaffolds(), 2)
		})
	}
}

func TestStapleOperationCommand_Validate(t *testing.T) {
	err := NewStapleOperationCommand(buildPair(t), "", testr.New(t)).Validate()
	assert.ErrorContains(t, err, "staple directive is required")

	err = NewStapleOperationCommand(buildPair(t), "purge", testr.New(t)).Validate()
	assert.ErrorIs(t, err, application.ErrInvalidDirective)

	err = NewStapleOperationCommand(nil, "delete", testr.New(t)).Validate()
	assert.ErrorIs(t, err, application.ErrNoStructure)
}
