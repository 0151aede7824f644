package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

// straightDesign is one square-lattice helix with a scaffold 0[0]..0[n-1] and
// a single staple running back over it
func straightDesign(n int) *domain.Design {
	h := domain.DesignHelix{
		Num:          0,
		Scaffold:     make([]domain.BaseSlot, n),
		Staple:       make([]domain.BaseSlot, n),
		StapleColors: []domain.StapleColor{{Pos: n - 1, Color: 5}},
	}
	for p := range n {
		h.Scaffold[p] = domain.BaseSlot{Prev: domain.Link{Helix: 0, Pos: p - 1}, Next: domain.Link{Helix: 0, Pos: p + 1}}
		h.Staple[p] = domain.BaseSlot{Prev: domain.Link{Helix: 0, Pos: p + 1}, Next: domain.Link{Helix: 0, Pos: p - 1}}
	}
	h.Scaffold[0].Prev = domain.NoLink
	h.Scaffold[n-1].Next = domain.NoLink
	h.Staple[n-1].Prev = domain.NoLink
	h.Staple[0].Next = domain.NoLink
	return &domain.Design{Name: "straight", Lattice: domain.LatticeSquare, Helices: []domain.DesignHelix{h}}
}

func buildStructure(t testing.TB, n int) *domain.Structure {
	t.Helper()
	s, err := domain.Build(straightDesign(n), domain.DefaultParameters(), false, logr.Discard())
	require.NoError(t, err)
	return s
}

func openStore(t *testing.T, path, version string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path, version, testr.New(t))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndSummary(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "straight.db"), "0.3.0")
	s := buildStructure(t, 4)
	lib := domain.NewLibrary()
	lib.Register("tiny", "ACGT")
	require.NoError(t, domain.AssignFromName(s, false, "tiny", lib, testr.New(t)))

	require.NoError(t, store.Save(ctx, s))
	sum, err := store.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, "straight", sum.Name)
	assert.Equal(t, "square", sum.Lattice)
	assert.False(t, sum.Modified)
	assert.Equal(t, "0.3.0", sum.Version)
	assert.Equal(t, 1, sum.Helices)
	assert.Equal(t, 2, sum.Strands)
	assert.Equal(t, 1, sum.Staples)
	assert.Equal(t, 8, sum.Bases)
	assert.Equal(t, 8, sum.Paired)
	assert.Equal(t, 8, sum.Sequenced)
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "straight.db"), "0.3.0")

	require.NoError(t, store.Save(ctx, buildStructure(t, 6)))
	require.NoError(t, store.Save(ctx, buildStructure(t, 4)))
	sum, err := store.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 8, sum.Bases)
	assert.Equal(t, 0, sum.Sequenced)
}

func TestStore_StrandSequence(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, filepath.Join(t.TempDir(), "straight.db"), "0.3.0")
	s := buildStructure(t, 4)
	lib := domain.NewLibrary()
	lib.Register("tiny", "AACG")
	require.NoError(t, domain.AssignFromName(s, false, "tiny", lib, testr.New(t)))
	require.NoError(t, store.Save(ctx, s))

	for _, st := range s.Strands {
		seq, err := store.StrandSequence(ctx, st.ID)
		require.NoError(t, err)
		assert.Equal(t, s.Sequence(&st), seq)
	}

	_, err := store.StrandSequence(ctx, 42)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestStore_SummaryEmpty(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "empty.db"), "0.3.0")

	_, err := store.Summary(context.Background())

	assert.ErrorIs(t, err, application.ErrNoStructure)
}

func TestStore_VersionCompatibility(t *testing.T) {
	tests := []struct {
		name    string
		saved   string
		opened  string
		wantErr bool
	}{
		{"same release", "1.2.0", "1.2.0", false},
		{"newer minor", "1.2.0", "1.4.1", false},
		{"older minor", "1.4.0", "1.2.0", false},
		{"major bump", "1.2.0", "2.0.0", true},
		{"pre-1.0 minor bump", "0.3.0", "0.4.0", true},
		{"pre-1.0 patch bump", "0.3.0", "0.3.2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "versioned.db")
			first, err := Open(ctx, path, tt.saved, testr.New(t))
			require.NoError(t, err)
			require.NoError(t, first.Save(ctx, buildStructure(t, 4)))
			require.NoError(t, first.Close())

			second, err := Open(ctx, path, tt.opened, testr.New(t))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompatibleStore)
				assert.Nil(t, second)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, second.Close())
		})
	}
}

func TestOpen_InvalidVersion(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"), "not-a-version", testr.New(t))

	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "nanodesign", "origami.db"), DefaultPath("origami"))
}
