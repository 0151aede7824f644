package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"nanodesign/internal/domain"
)

// snapshotTx writes one structure snapshot inside a transaction
type snapshotTx struct {
	tx  *sql.Tx
	ctx context.Context
}

func (t *snapshotTx) exec(query string, args ...any) error {
	_, err := t.tx.ExecContext(t.ctx, query, args...)
	return err
}

// Clear removes the previous snapshot
func (t *snapshotTx) Clear() error {
	for _, table := range []string{"bases", "domains", "strands", "helix_modifiers", "helices"} {
		if err := t.exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// SetMeta inserts or updates a meta entry
func (t *snapshotTx) SetMeta(key, value string) error {
	return t.exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
}

// InsertHelix stores a helix and its non-zero modifiers
func (t *snapshotTx) InsertHelix(h *domain.Helix) error {
	err := t.exec(`
		INSERT INTO helices (num, lattice_row, lattice_col, load_order, size, origin_x, origin_y, origin_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, h.Num, h.Row, h.Col, h.LoadOrder, h.Size, h.Origin.X, h.Origin.Y, h.Origin.Z)
	if err != nil {
		return err
	}
	for pos, m := range h.Modifiers {
		if m == 0 {
			continue
		}
		if err := t.exec(`INSERT INTO helix_modifiers (helix, pos, modifier) VALUES (?, ?, ?)`, h.Num, pos, m); err != nil {
			return err
		}
	}
	return nil
}

// InsertStrand stores a strand and its domains
func (t *snapshotTx) InsertStrand(st *domain.Strand) error {
	err := t.exec(`
		INSERT INTO strands (id, scaffold, circular, color, first_base, last_base)
		VALUES (?, ?, ?, ?, ?, ?)
	`, int(st.ID), st.Scaffold, st.Circular, st.Color, st.Start, st.End)
	if err != nil {
		return err
	}
	for i, d := range st.Domains {
		err := t.exec(`
			INSERT INTO domains (strand_id, idx, helix, first_base, last_base)
			VALUES (?, ?, ?, ?, ?)
		`, int(st.ID), i, d.Helix, d.Start, d.End)
		if err != nil {
			return err
		}
	}
	return nil
}

// InsertBases stores the arena through one prepared statement
func (t *snapshotTx) InsertBases(bases []domain.Base) error {
	stmt, err := t.tx.PrepareContext(t.ctx, `
		INSERT INTO bases (id, helix, pos, base_offset, track, strand_id, prev_id, next_id, across_id, seq, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bases {
		_, err := stmt.ExecContext(t.ctx,
			int(b.ID), b.Locus.Helix, b.Locus.Pos, b.Locus.Offset,
			b.Track.String(), int(b.Strand),
			nullableBase(b.Prev), nullableBase(b.Next), nullableBase(b.Across),
			b.Seq.String(), b.Coord.X, b.Coord.Y, b.Coord.Z)
		if err != nil {
			return fmt.Errorf("failed to insert base %d: %w", b.ID, err)
		}
	}
	return nil
}

// Commit commits the transaction
func (t *snapshotTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *snapshotTx) Rollback() error {
	return t.tx.Rollback()
}

func nullableBase(id domain.BaseID) sql.NullInt64 {
	if id == domain.NoBase {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(id), Valid: true}
}
