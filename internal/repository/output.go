// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"

	"pdfapi/internal/model"
)

// OutputRepository persists the link between a requested output name and the
// file the service actually wrote. No business logic here, strictly persistence.
type OutputRepository interface {
	// Create stores rec and returns the stored record. A record with the same
	// Name is replaced, keeping its ID.
	Create(ctx context.Context, rec *model.OutputRecord) (*model.OutputRecord, error)

	// FindByName returns the record whose final name is name.
	// It returns sql.ErrNoRows when no such record exists.
	FindByName(ctx context.Context, name string) (*model.OutputRecord, error)

	// List returns a page of records, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.OutputRecord], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
