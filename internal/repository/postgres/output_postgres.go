package postgres

import (
	"context"
	"database/sql"

	"pdfapi/internal/model"
	"pdfapi/internal/repository"
)

// OutputPostgres is a PostgreSQL implementation of repository.OutputRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type OutputPostgres struct {
	db *sql.DB
}

// NewOutputPostgres creates a new OutputPostgres repository.
func NewOutputPostgres(db *sql.DB) *OutputPostgres {
	return &OutputPostgres{db: db}
}

var _ repository.OutputRepository = (*OutputPostgres)(nil)

const outputColumns = `id, name, requested_name, operation, source_filename, storage_path, media_type, size, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOutput(s scanner) (*model.OutputRecord, error) {
	var o model.OutputRecord
	if err := s.Scan(
		&o.ID,
		&o.Name,
		&o.RequestedName,
		&o.Operation,
		&o.SourceFilename,
		&o.StoragePath,
		&o.MediaType,
		&o.Size,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an output row and returns the stored record. A row that
// already holds rec.Name is overwritten in place and keeps its id, matching
// the file that was just renamed over the previous output.
func (r *OutputPostgres) Create(ctx context.Context, rec *model.OutputRecord) (*model.OutputRecord, error) {
	const q = `
		INSERT INTO outputs (` + outputColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET
			requested_name  = EXCLUDED.requested_name,
			operation       = EXCLUDED.operation,
			source_filename = EXCLUDED.source_filename,
			storage_path    = EXCLUDED.storage_path,
			media_type      = EXCLUDED.media_type,
			size            = EXCLUDED.size,
			created_at      = EXCLUDED.created_at
		RETURNING ` + outputColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.Name,
		rec.RequestedName,
		rec.Operation,
		rec.SourceFilename,
		rec.StoragePath,
		rec.MediaType,
		rec.Size,
		rec.CreatedAt,
	)
	return scanOutput(row)
}

// FindByName fetches a single output by its final name.
func (r *OutputPostgres) FindByName(ctx context.Context, name string) (*model.OutputRecord, error) {
	const q = `
		SELECT ` + outputColumns + `
		FROM outputs
		WHERE name = $1
	`
	return scanOutput(r.db.QueryRowContext(ctx, q, name))
}

// List returns outputs using LIMIT/OFFSET pagination and a total count.
func (r *OutputPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.OutputRecord], error) {
	const qCount = `SELECT COUNT(*) FROM outputs`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + outputColumns + `
		FROM outputs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OutputRecord, 0)
	for rows.Next() {
		o, err := scanOutput(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.OutputRecord]{
		Items: items,
		Total: total,
	}, nil
}
