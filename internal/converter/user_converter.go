package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		ClinicID:  user.ClinicID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ProviderToResponse converts a ProviderProfile (with its user loaded) to a
// ProviderResponse DTO
func ProviderToResponse(profile *entity.ProviderProfile) *dto.ProviderResponse {
	if profile == nil {
		return nil
	}

	return &dto.ProviderResponse{
		UserID:         profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}
}

// ProvidersToResponses converts a slice of ProviderProfile entities to response DTOs
func ProvidersToResponses(profiles []entity.ProviderProfile) []dto.ProviderResponse {
	responses := make([]dto.ProviderResponse, len(profiles))
	for i, profile := range profiles {
		resp := ProviderToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
