package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ClaysonV/Market-Breadth-Dashboard/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists daily closes to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite price cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_closes (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			close  REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_closes_date ON daily_closes(date)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// LoadCloses returns cached closes for symbol within [from, to], oldest first.
func (s *SQLiteStore) LoadCloses(symbol string, from, to time.Time) ([]model.ClosePoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT date, close FROM daily_closes
		 WHERE symbol = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC`,
		symbol, from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query closes for %s: %w", symbol, err)
	}
	defer rows.Close()

	var points []model.ClosePoint
	for rows.Next() {
		var dateStr string
		var closePrice float64
		if err := rows.Scan(&dateStr, &closePrice); err != nil {
			return nil, fmt.Errorf("scan close row: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse cached date %q: %w", dateStr, err)
		}
		points = append(points, model.ClosePoint{Date: date, Close: closePrice})
	}
	return points, rows.Err()
}

// SaveCloses upserts the given closes for symbol inside a single transaction.
func (s *SQLiteStore) SaveCloses(symbol string, points []model.ClosePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO daily_closes (symbol, date, close) VALUES (?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.Exec(symbol, p.Date.Format(dateLayout), p.Close); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert close %s %s: %w", symbol, p.Date.Format(dateLayout), err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite price cache")
	return s.db.Close()
}
