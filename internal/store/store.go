// Package store is the evaluation archive: every completed run is persisted
// to SQLite so grades can be queried later and compared across re-runs of
// the same document.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	run_id        TEXT PRIMARY KEY,
	document_id   TEXT NOT NULL,
	patent_number TEXT NOT NULL DEFAULT '',
	title         TEXT NOT NULL DEFAULT '',
	applicant     TEXT NOT NULL DEFAULT '',
	overall_score REAL NOT NULL,
	normal_score  REAL NOT NULL,
	grade         TEXT NOT NULL,
	reevaluated   INTEGER NOT NULL DEFAULT 0,
	percentile    REAL NOT NULL DEFAULT 0,
	result        TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_document
	ON evaluations (document_id, created_at);
`

// Evaluation is one archived run. Result carries the full evaluation output
// as JSON; the scalar columns exist so history queries don't have to decode
// it.
type Evaluation struct {
	RunID        string          `db:"run_id" json:"run_id"`
	DocumentID   string          `db:"document_id" json:"document_id"`
	PatentNumber string          `db:"patent_number" json:"patent_number"`
	Title        string          `db:"title" json:"title"`
	Applicant    string          `db:"applicant" json:"applicant"`
	OverallScore float64         `db:"overall_score" json:"overall_score"`
	NormalScore  float64         `db:"normal_score" json:"normal_score"`
	Grade        string          `db:"grade" json:"grade"`
	Reevaluated  bool            `db:"reevaluated" json:"reevaluated"`
	Percentile   float64         `db:"percentile" json:"percentile"`
	Result       json.RawMessage `db:"result" json:"result,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// Archive is the SQLite-backed evaluation history.
type Archive struct {
	db *sqlx.DB
}

func Open(dbPath string) (*Archive, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Save writes one evaluation row. The run ID must already be set; saving the
// same run twice replaces the row.
func (a *Archive) Save(ev Evaluation) error {
	if strings.TrimSpace(ev.RunID) == "" {
		return fmt.Errorf("evaluation run_id is required")
	}
	if strings.TrimSpace(ev.DocumentID) == "" {
		return fmt.Errorf("evaluation document_id is required")
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	_, err := a.db.Exec(`INSERT OR REPLACE INTO evaluations
		(run_id, document_id, patent_number, title, applicant, overall_score, normal_score, grade, reevaluated, percentile, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.RunID,
		ev.DocumentID,
		ev.PatentNumber,
		ev.Title,
		ev.Applicant,
		ev.OverallScore,
		ev.NormalScore,
		ev.Grade,
		boolToInt(ev.Reevaluated),
		ev.Percentile,
		string(ev.Result),
		ev.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Get returns the run with the given ID, reporting whether it exists.
func (a *Archive) Get(runID string) (Evaluation, bool, error) {
	row := a.db.QueryRow(`SELECT run_id, document_id, patent_number, title, applicant, overall_score, normal_score, grade, reevaluated, percentile, result, created_at
		FROM evaluations WHERE run_id = ?`, runID)
	ev, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return Evaluation{}, false, nil
	}
	if err != nil {
		return Evaluation{}, false, err
	}
	return ev, true, nil
}

// ByDocument returns the runs for one document, newest first.
func (a *Archive) ByDocument(documentID string, limit int) ([]Evaluation, error) {
	return a.query(`SELECT run_id, document_id, patent_number, title, applicant, overall_score, normal_score, grade, reevaluated, percentile, result, created_at
		FROM evaluations WHERE document_id = ? ORDER BY created_at DESC, run_id LIMIT ?`, documentID, clampLimit(limit))
}

// Recent returns the newest runs across all documents.
func (a *Archive) Recent(limit int) ([]Evaluation, error) {
	return a.query(`SELECT run_id, document_id, patent_number, title, applicant, overall_score, normal_score, grade, reevaluated, percentile, result, created_at
		FROM evaluations ORDER BY created_at DESC, run_id LIMIT ?`, clampLimit(limit))
}

func (a *Archive) query(q string, args ...any) ([]Evaluation, error) {
	rows, err := a.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var ev Evaluation
	var reevaluated int
	var result, createdAt string
	if err := row.Scan(&ev.RunID, &ev.DocumentID, &ev.PatentNumber, &ev.Title, &ev.Applicant,
		&ev.OverallScore, &ev.NormalScore, &ev.Grade, &reevaluated, &ev.Percentile, &result, &createdAt); err != nil {
		return Evaluation{}, err
	}
	ev.Reevaluated = reevaluated != 0
	if result != "" {
		ev.Result = json.RawMessage(result)
	}
	ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return ev, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
