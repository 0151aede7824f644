package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

func TestListStrandsCommand(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		colors  []int
		wantIDs []domain.StrandID
		errMsg  string
	}{
		{name: "all", wantIDs: []domain.StrandID{0, 1, 2, 3}},
		{name: "scaffolds", role: "scaffold", wantIDs: []domain.StrandID{0, 2}},
		{name: "staples", role: "staple", wantIDs: []domain.StrandID{1, 3}},
		{name: "by color", colors: []int{7}, wantIDs: []domain.StrandID{3}},
		{name: "bad role", role: "loop", errMsg: "expected scaffold or staple"},
		{name: "colors on scaffold", role: "scaffold", colors: []int{5}, errMsg: "colors only apply to staples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewListStrandsCommand(buildPair(t))
			cmd.Role = tt.role
			cmd.Colors = tt.colors

			got, err := cmd.Execute(context.Background())

			if tt.errMsg != "" {
				assert.ErrorContains(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			var ids []domain.StrandID
			for _, st := range got {
				ids = append(ids, st.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGetStrandCommand(t *testing.T) {
	s := buildPair(t)

	info, err := NewGetStrandCommand(s, 1).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "staple", info.Role)
	assert.Equal(t, 5, info.Color)
	assert.Equal(t, domain.Locus{Helix: 0, Pos: 3}, info.Start)
	assert.Equal(t, domain.Locus{Helix: 0, Pos: 0}, info.End)
	assert.Equal(t, []DomainInfo{{Helix: 0, Start: 3, End: 0, Length: 4}}, info.Domains)
	assert.Equal(t, "NNNN", info.Sequence)
	assert.Equal(t, "staple 1 #000005 0[3]->0[0]", info.Label())

	_, err = NewGetStrandCommand(s, 42).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)
}
