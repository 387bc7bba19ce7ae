package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("full_name ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).
		Where("clinic_id = ?", clinicID).
		Count(&count).Error
	return count, err
}

type patientFileRepository struct{}

func NewPatientFileRepository() domainRepo.PatientFileRepository {
	return &patientFileRepository{}
}

func (r *patientFileRepository) Create(ctx context.Context, db *gorm.DB, file *entity.PatientFile) error {
	return db.WithContext(ctx).Create(file).Error
}

func (r *patientFileRepository) CountByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.PatientFile{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}
