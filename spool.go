package influxc

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	// SQLite driver using pure Go implementation
	_ "modernc.org/sqlite"
)

// Spool persists write batches that failed delivery, so they survive
// process restarts and can be replayed once the server is reachable again.
// Batches are stored as the exact line-protocol text that failed, together
// with the write parameters they were sent with.
type Spool struct {
	db     *sql.DB
	config SpoolConfig

	mu     sync.Mutex
	closed bool

	insertStmt *sql.Stmt
	deleteStmt *sql.Stmt
	countStmt  *sql.Stmt
	trimStmt   *sql.Stmt
}

// OpenSpool opens (creating if needed) the SQLite file backing the spool.
func OpenSpool(config SpoolConfig) (*Spool, error) {
	if config.Path == "" {
		return nil, newBadRequestError("spool requires a path", "", 0, nil)
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = 5000
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		config.Path, config.BusyTimeout)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open spool: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS spool (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			queued_at INTEGER NOT NULL,
			db        TEXT NOT NULL,
			rp        TEXT NOT NULL,
			precision TEXT NOT NULL,
			lines     TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create spool schema: %w", err)
	}

	s := &Spool{db: db, config: config}
	for _, p := range []struct {
		stmt **sql.Stmt
		sql  string
	}{
		{&s.insertStmt, `INSERT INTO spool (queued_at, db, rp, precision, lines) VALUES (?, ?, ?, ?, ?)`},
		{&s.deleteStmt, `DELETE FROM spool WHERE id = ?`},
		{&s.countStmt, `SELECT COUNT(*) FROM spool`},
		{&s.trimStmt, `DELETE FROM spool WHERE id NOT IN (SELECT id FROM spool ORDER BY id DESC LIMIT ?)`},
	} {
		st, err := db.Prepare(p.sql)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("prepare spool statement: %w", err)
		}
		*p.stmt = st
	}
	return s, nil
}

// Enqueue stores a failed batch. When MaxBatches is set, oldest batches are
// dropped to stay within the bound.
func (s *Spool) Enqueue(params WriteParams, lines string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	_, err := s.insertStmt.Exec(time.Now().UnixNano(),
		params.Database.String(), params.RetentionPolicy.String(),
		params.Precision.Name(), lines)
	if err != nil {
		return fmt.Errorf("spool enqueue: %w", err)
	}
	if s.config.MaxBatches > 0 {
		if _, err := s.trimStmt.Exec(s.config.MaxBatches); err != nil {
			return fmt.Errorf("spool trim: %w", err)
		}
	}
	return nil
}

// Len returns the number of spooled batches.
func (s *Spool) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	var n int
	if err := s.countStmt.QueryRow().Scan(&n); err != nil {
		return 0, fmt.Errorf("spool count: %w", err)
	}
	return n, nil
}

// Replay re-delivers spooled batches oldest first through the client,
// deleting each on success. It stops at the first delivery failure and
// returns the number of batches delivered.
func (s *Spool) Replay(ctx context.Context, client *Client) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	rows, err := s.db.Query(`SELECT id, db, rp, precision, lines FROM spool ORDER BY id ASC`)
	if err != nil {
		return 0, fmt.Errorf("spool scan: %w", err)
	}
	type batch struct {
		id              int64
		db, rp, pn, lns string
	}
	var batches []batch
	for rows.Next() {
		var b batch
		if err := rows.Scan(&b.id, &b.db, &b.rp, &b.pn, &b.lns); err != nil {
			rows.Close()
			return 0, fmt.Errorf("spool scan: %w", err)
		}
		batches = append(batches, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("spool scan: %w", err)
	}

	delivered := 0
	for _, b := range batches {
		db, err := NewDatabase(b.db)
		if err != nil {
			// Unreplayable row; drop it rather than wedging the spool.
			_, _ = s.deleteStmt.Exec(b.id)
			continue
		}
		prec, ok := writePrecisionNamed(b.pn)
		if !ok {
			_, _ = s.deleteStmt.Exec(b.id)
			continue
		}
		params := WriteParams{
			Database:        db,
			RetentionPolicy: RetentionPolicy(b.rp),
			Precision:       prec,
		}
		if err := client.writeLines(ctx, params, b.lns); err != nil {
			return delivered, err
		}
		if _, err := s.deleteStmt.Exec(b.id); err != nil {
			return delivered, fmt.Errorf("spool delete: %w", err)
		}
		delivered++
	}
	return delivered, nil
}

// Close releases the underlying SQLite handle.
func (s *Spool) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, st := range []*sql.Stmt{s.insertStmt, s.deleteStmt, s.countStmt, s.trimStmt} {
		if st != nil {
			st.Close()
		}
	}
	return s.db.Close()
}
