package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanodesign/internal/adapters/cadnano"
	"nanodesign/internal/application"
	"nanodesign/internal/domain"
)

// writeFixture writes a one-helix square design, a config file and a one-record
// sequence library into a temp dir and returns the design and config paths
var tiny = strings.Repeat("ACGT", 8)

func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	const n = 32
	h := domain.DesignHelix{
		Scaffold:     make([]domain.BaseSlot, n),
		Staple:       make([]domain.BaseSlot, n),
		StapleColors: []domain.StapleColor{{Pos: n - 1, Color: 0x0066cc}},
	}
	for p := range n {
		h.Scaffold[p] = domain.BaseSlot{Prev: domain.Link{Pos: p - 1}, Next: domain.Link{Pos: p + 1}}
		h.Staple[p] = domain.BaseSlot{Prev: domain.Link{Pos: p + 1}, Next: domain.Link{Pos: p - 1}}
	}
	h.Scaffold[0].Prev = domain.NoLink
	h.Scaffold[n-1].Next = domain.NoLink
	h.Staple[n-1].Prev = domain.NoLink
	h.Staple[0].Next = domain.NoLink
	d := &domain.Design{Name: "bar", Lattice: domain.LatticeSquare, Helices: []domain.DesignHelix{h}}

	s, err := domain.Build(d, domain.DefaultParameters(), false, testr.New(t))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, cadnano.NewWriter().Write(&buf, s))
	design := filepath.Join(dir, "bar.json")
	require.NoError(t, os.WriteFile(design, buf.Bytes(), 0o644))

	seqDir := filepath.Join(dir, "sequences")
	require.NoError(t, os.MkdirAll(seqDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(seqDir, "lib.fasta"), []byte(">tiny\n"+tiny+"\n"), 0o644))

	conf := filepath.Join(dir, "nanodesign.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("sequence_dir: "+seqDir+"\nlog:\n  level: error\n"), 0o644))
	return design, conf
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInfo_JSON(t *testing.T) {
	design, conf := writeFixture(t)

	out, err := run(t, "info", design, "--config", conf, "--json")

	require.NoError(t, err)
	var sum application.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, "bar", sum.Name)
	assert.Equal(t, 1, sum.Scaffolds)
	assert.Equal(t, 1, sum.Staples)
	assert.Equal(t, 64, sum.Bases)
	assert.Equal(t, 64, sum.PairedBases)
}

func TestSequences(t *testing.T) {
	_, conf := writeFixture(t)

	out, err := run(t, "sequences", "--config", conf)

	require.NoError(t, err)
	assert.Equal(t, "tiny 32 nt\n", out)
}

func TestConvert_CSVWithSequence(t *testing.T) {
	design, conf := writeFixture(t)

	out, err := run(t, "convert", design, "--config", conf, "--format", "csv", "--sequence-name", "tiny")

	require.NoError(t, err)
	assert.Contains(t, out, "#0066cc")
	assert.Contains(t, out, tiny)
}

func TestConvert_SQLiteThenStore(t *testing.T) {
	design, conf := writeFixture(t)
	db := filepath.Join(t.TempDir(), "bar.db")

	out, err := run(t, "convert", design, "--config", conf, "--format", "sqlite", "--out", db, "--sequence-name", "tiny")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved bar")

	out, err = run(t, "store", "summary", db, "--config", conf)
	require.NoError(t, err)
	assert.Contains(t, out, "Strands:   2 (1 staples)")
	assert.Contains(t, out, "64 sequenced")

	out, err = run(t, "store", "sequence", db, "0", "--config", conf)
	require.NoError(t, err)
	assert.Equal(t, tiny+"\n", out)
}

func TestConvert_UnknownSequence(t *testing.T) {
	design, conf := writeFixture(t)

	_, err := run(t, "convert", design, "--config", conf, "--sequence-name", "no_such_scaffold")

	assert.ErrorIs(t, err, domain.ErrUnknownSequenceName)
}

func TestConvert_FailedExportRemovesOutput(t *testing.T) {
	design, conf := writeFixture(t)
	out := filepath.Join(t.TempDir(), "bar.pdb")
	t.Cleanup(func() { convertFormat, convertOut = "topology", "" })

	_, err := run(t, "convert", design, "--config", conf, "--format", "pdb", "--out", out, "--sequence-name", "tiny")

	var verr *application.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "format", verr.Field)
	assert.NoFileExists(t, out)
}

func TestConvert_WritesOutputFile(t *testing.T) {
	design, conf := writeFixture(t)
	out := filepath.Join(t.TempDir(), "bar.csv")
	t.Cleanup(func() { convertFormat, convertOut = "topology", "" })

	_, err := run(t, "convert", design, "--config", conf, "--format", "csv", "--out", out, "--sequence-name", "tiny")

	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#0066cc")
}

func TestStaples_ByColor(t *testing.T) {
	design, conf := writeFixture(t)

	out, err := run(t, "staples", design, "--config", conf, "--colors", "26316")
	require.NoError(t, err)
	assert.Equal(t, "1 #0066cc 0[31] 0[0] 32 "+strings.Repeat("N", 32)+"\n", out)

	out, err = run(t, "staples", design, "--config", conf, "--colors", "7")
	require.NoError(t, err)
	assert.Empty(t, out)
}
