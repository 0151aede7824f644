package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nanodesign/internal/application"
	"nanodesign/internal/domain"
	"nanodesign/internal/ports"
)

// Save replaces the stored snapshot with s in a single transaction
func (s *Store) Save(ctx context.Context, st *domain.Structure) error {
	start := time.Now()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	tx := &snapshotTx{tx: sqlTx, ctx: ctx}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = tx.Clear(); err != nil {
		return err
	}
	meta := map[string]string{
		metaGeneratorVersion: s.version.String(),
		metaName:             st.Name,
		metaLattice:          st.Lattice.String(),
		metaModified:         strconv.FormatBool(st.Modified),
	}
	for k, v := range meta {
		if err = tx.SetMeta(k, v); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", k, err)
		}
	}
	for i := range st.Helices {
		if err = tx.InsertHelix(&st.Helices[i]); err != nil {
			return fmt.Errorf("failed to insert helix %d: %w", st.Helices[i].Num, err)
		}
	}
	for i := range st.Strands {
		if err = tx.InsertStrand(&st.Strands[i]); err != nil {
			return fmt.Errorf("failed to insert strand %d: %w", st.Strands[i].ID, err)
		}
	}
	if err = tx.InsertBases(st.Bases); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.log.V(1).Info("snapshot saved",
		"name", st.Name,
		"bases", len(st.Bases),
		"strands", len(st.Strands),
		"took", time.Since(start).String())
	return nil
}

// Summary reads the counts of the stored snapshot back
func (s *Store) Summary(ctx context.Context) (*ports.StoredSummary, error) {
	sum := &ports.StoredSummary{}
	var err error
	if sum.Name, err = s.meta(ctx, metaName); err != nil {
		return nil, err
	}
	if sum.Name == "" {
		return nil, application.ErrNoStructure
	}
	if sum.Lattice, err = s.meta(ctx, metaLattice); err != nil {
		return nil, err
	}
	if sum.Version, err = s.meta(ctx, metaGeneratorVersion); err != nil {
		return nil, err
	}
	modified, err := s.meta(ctx, metaModified)
	if err != nil {
		return nil, err
	}
	sum.Modified = modified == "true"

	counts := []struct {
		dest  *int
		query string
	}{
		{&sum.Helices, `SELECT COUNT(*) FROM helices`},
		{&sum.Strands, `SELECT COUNT(*) FROM strands`},
		{&sum.Staples, `SELECT COUNT(*) FROM strands WHERE scaffold = 0`},
		{&sum.Bases, `SELECT COUNT(*) FROM bases`},
		{&sum.Paired, `SELECT COUNT(*) FROM bases WHERE across_id IS NOT NULL`},
		{&sum.Sequenced, `SELECT COUNT(*) FROM bases WHERE seq != 'N'`},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}
	return sum, nil
}

// StrandSequence returns the stored 5'->3' sequence of one strand
func (s *Store) StrandSequence(ctx context.Context, id domain.StrandID) (string, error) {
	var first, last int
	err := s.db.QueryRowContext(ctx, `SELECT first_base, last_base FROM strands WHERE id = ?`, int(id)).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", &application.StrandError{ID: int(id), Reason: "not in store"}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read strand %d: %w", id, err)
	}

	// bases of a strand occupy a contiguous id range in arena order
	rows, err := s.db.QueryContext(ctx, `SELECT seq FROM bases WHERE id >= ? AND id < ? ORDER BY id`, first, last)
	if err != nil {
		return "", fmt.Errorf("failed to read bases: %w", err)
	}
	defer rows.Close()

	seq := make([]byte, 0, last-first)
	for rows.Next() {
		var letter string
		if err := rows.Scan(&letter); err != nil {
			return "", err
		}
		seq = append(seq, letter...)
	}
	return string(seq), rows.Err()
}
