package persist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"gonum.org/v1/gonum/mat"

	"github.com/hhprep/hhprep/pkg/errors"
)

// PostgresSink stores encoded rows in PostgreSQL: one row per sample
// with the feature vector as a DOUBLE PRECISION array plus the target.
type PostgresSink struct {
	db        *sql.DB
	tableName string
}

// NewPostgresSink opens a connection, verifies it and ensures the target
// table exists.
func NewPostgresSink(connStr, tableName string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres connection")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	sink := &PostgresSink{db: db, tableName: tableName}
	if err := sink.ensureTable(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensure table")
	}
	return sink, nil
}

func (s *PostgresSink) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			features DOUBLE PRECISION[] NOT NULL,
			target DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, s.tableName)

	_, err := s.db.Exec(query)
	return errors.WithStack(err)
}

// Store writes every row of x with its target from y under one run ID,
// inside a single transaction.
func (s *PostgresSink) Store(ctx context.Context, runID string, x mat.Matrix, y mat.Vector) error {
	rows, cols := x.Dims()
	if rows != y.Len() {
		return errors.NewDimensionError("postgres store", rows, y.Len(), 0)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, row_index, features, target)
		VALUES ($1, $2, $3, $4)
	`, s.tableName)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "prepare statement")
	}
	defer stmt.Close()

	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features[j] = x.At(i, j)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, pq.Array(features), y.AtVec(i)); err != nil {
			return errors.Wrapf(err, "insert row %d", i)
		}
	}

	return errors.Wrap(tx.Commit(), "commit transaction")
}

// Close closes the database connection.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}
