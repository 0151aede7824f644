package filesystem

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/go-logr/logr"

	"nanodesign/internal/domain"
)

// reference holds the scaffold sequences built into the binary. FASTA files
// dropped into reference/ are embedded at build time.
//
//go:embed reference
var reference embed.FS

// fastaExtensions are the file suffixes scanned for sequences
var fastaExtensions = map[string]bool{".fasta": true, ".fa": true, ".fna": true}

// Record is one named sequence of a FASTA file
type Record struct {
	Name        string
	Description string
	Sequence    string
}

// Library implements ports.SequenceLibrary over the built-in reference
// sequences and a directory of FASTA files
type Library struct {
	dir       string
	reference fs.FS
	lib       *domain.Library
	log       logr.Logger
}

// NewLibrary creates a library rooted at dir. Nothing is read until Load.
func NewLibrary(dir string, log logr.Logger) *Library {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	sub, _ := fs.Sub(reference, "reference")
	return &Library{dir: dir, reference: sub, lib: domain.NewLibrary(), log: log.WithName("library")}
}

// WithReference replaces the built-in reference sequences
func (l *Library) WithReference(fsys fs.FS) *Library {
	l.reference = fsys
	return l
}

// Dir returns the directory the library reads from
func (l *Library) Dir() string {
	return l.dir
}

// Load reads the reference sequences, then every FASTA file in the library
// directory. Files are read in name order, so a directory record overrides a
// reference record, and a later file an earlier one, of the same name. A
// missing directory leaves only the reference sequences.
func (l *Library) Load() error {
	if err := l.loadReference(); err != nil {
		return err
	}
	if l.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(l.dir)
	if os.IsNotExist(err) {
		l.log.V(1).Info("sequence directory does not exist", "dir", l.dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read sequence directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if fastaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(l.dir, entry.Name()))
		}
	}
	sort.Strings(files)

	for _, p := range files {
		records, err := readFASTAFile(p)
		if err != nil {
			return err
		}
		l.register(records)
		l.log.V(1).Info("sequence file loaded", "file", filepath.Base(p), "records", len(records))
	}
	l.log.Info("sequence library loaded", "dir", l.dir, "sequences", l.lib.Len())
	return nil
}

func (l *Library) loadReference() error {
	if l.reference == nil {
		return nil
	}
	files, err := fs.Glob(l.reference, "*")
	if err != nil {
		return err
	}
	for _, name := range files {
		if !fastaExtensions[strings.ToLower(path.Ext(name))] {
			continue
		}
		f, err := l.reference.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open reference %s: %w", name, err)
		}
		records, err := ParseFASTA(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("reference %s: %w", name, err)
		}
		l.register(records)
		l.log.V(1).Info("reference sequences loaded", "file", name, "records", len(records))
	}
	return nil
}

func (l *Library) register(records []Record) {
	for _, rec := range records {
		l.lib.Register(rec.Name, rec.Sequence)
	}
}

// Register adds a sequence without touching the filesystem
func (l *Library) Register(name, seq string) {
	l.lib.Register(name, seq)
}

// Lookup returns the sequence registered under name
func (l *Library) Lookup(name string) (string, bool) {
	return l.lib.Lookup(name)
}

// Names returns the registered names in sorted order
func (l *Library) Names() []string {
	return l.lib.Names()
}

func readFASTAFile(p string) ([]Record, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	records, err := ParseFASTA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
	}
	return records, nil
}

// ParseFASTA reads ">name description" records with biogo's FASTA reader and
// checks every sequence is made of A, C, G and T. Letters are upper-cased.
func ParseFASTA(in io.Reader) ([]Record, error) {
	template := linear.NewSeq("", nil, alphabet.DNA)
	sc := seqio.NewScanner(fasta.NewReader(in, template))

	var records []Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if s.Name() == "" {
			return nil, fmt.Errorf("record %d has no name", len(records)+1)
		}
		nts, err := domain.ParseSequence(s.Seq.String())
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", s.Name(), err)
		}
		records = append(records, Record{
			Name:        s.Name(),
			Description: strings.TrimSpace(s.Description()),
			Sequence:    domain.FormatSequence(nts),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return records, nil
}
