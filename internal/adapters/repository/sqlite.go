package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/pkg/metrics"
)

//go:embed sql/ddl.sql
var ddl embed.FS

const columns = `submission_id, university_id, candidate_id, success, score, standard_score_sum,
failure_kind, failure_reason, optimal_score, score_difference, cumulative_percentile,
risk_code, risk_label, risk_distance, scored_at`

// SQLiteStore persists evaluations in a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path, creating the schema when missing.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	schema, err := ddl.ReadFile("sql/ddl.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save upserts evaluations in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, evs []model.Evaluation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO evaluation (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range evs {
		if ev.SubmissionID == "" {
			return ErrInvalidEvaluation
		}
		var code sql.NullInt64
		var label sql.NullString
		var distance sql.NullFloat64
		if ev.Risk != nil {
			code = sql.NullInt64{Int64: int64(ev.Risk.Code), Valid: true}
			label = sql.NullString{String: ev.Risk.Label, Valid: true}
			distance = sql.NullFloat64{Float64: ev.Risk.DistanceFromCutoff, Valid: true}
		}
		r := ev.Result
		if _, err := stmt.ExecContext(ctx,
			ev.SubmissionID, r.UniversityID, ev.CandidateID, r.Success, r.Score, r.StandardScoreSum,
			string(r.FailureKind), r.FailureReason, r.OptimalScore, r.ScoreDifference, r.CumulativePercentile,
			code, label, distance, ev.ScoredAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("insert %s/%s: %w", ev.SubmissionID, r.UniversityID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	metrics.UpdateRepositoryResults(s.Count(ctx))
	return nil
}

// BySubmission returns evaluations of one submission in insertion order.
func (s *SQLiteStore) BySubmission(ctx context.Context, id string) ([]model.Evaluation, error) {
	return s.query(ctx, `SELECT `+columns+` FROM evaluation WHERE submission_id = ? ORDER BY rowid`, id)
}

// ByCandidate returns evaluations of one candidate in insertion order.
func (s *SQLiteStore) ByCandidate(ctx context.Context, id string) ([]model.Evaluation, error) {
	return s.query(ctx, `SELECT `+columns+` FROM evaluation WHERE candidate_id = ? ORDER BY rowid`, id)
}

func (s *SQLiteStore) query(ctx context.Context, q string, arg string) ([]model.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []model.Evaluation
	for rows.Next() {
		var ev model.Evaluation
		var kind string
		var code sql.NullInt64
		var label sql.NullString
		var distance sql.NullFloat64
		var scoredAt int64
		r := &ev.Result
		if err := rows.Scan(
			&ev.SubmissionID, &r.UniversityID, &ev.CandidateID, &r.Success, &r.Score, &r.StandardScoreSum,
			&kind, &r.FailureReason, &r.OptimalScore, &r.ScoreDifference, &r.CumulativePercentile,
			&code, &label, &distance, &scoredAt,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		r.FailureKind = model.FailureKind(kind)
		if code.Valid {
			ev.Risk = &model.RiskAssessment{Code: int(code.Int64), Label: label.String, DistanceFromCutoff: distance.Float64}
		}
		ev.ScoredAt = time.Unix(0, scoredAt).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Count returns the number of stored evaluations, or 0 on error.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluation`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
