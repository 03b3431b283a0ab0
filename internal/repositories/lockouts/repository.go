// Package lockouts stores per-username failed-login counters.
package lockouts

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// UpdateFunc receives the current record (nil when absent) and returns the
// record to store. Returning nil deletes the record. An error aborts the
// update and leaves storage unchanged.
type UpdateFunc func(current *models.FailureRecord) (*models.FailureRecord, error)

// Repository stores FailureRecords keyed by username.
type Repository interface {
	// Get returns common.ErrorNotFound when there is no record.
	Get(ctx context.Context, userName string) (*models.FailureRecord, error)

	// Update performs an atomic read-modify-write of one record and returns
	// what was stored (nil if the record was deleted).
	Update(ctx context.Context, userName string, fn UpdateFunc) (*models.FailureRecord, error)

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, userName string) error
}
