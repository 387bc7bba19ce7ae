package repository

import (
	"context"

	"gorm.io/gorm"
)

// TransactionManager runs fn inside a single database transaction. The
// transaction is rolled back when fn returns an error and committed otherwise.
// Usecases depend on this interface instead of calling Begin/Commit directly
// so they can be exercised against in-memory fakes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}
