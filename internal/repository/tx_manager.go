package repository

import (
	"context"

	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) domainRepo.TransactionManager {
	return &gormTransactionManager{db: db}
}

func (m *gormTransactionManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit().Error
}
