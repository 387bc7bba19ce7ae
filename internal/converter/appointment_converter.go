package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		ClinicID:        appointment.ClinicID,
		ProviderID:      appointment.ProviderID,
		PatientID:       appointment.PatientID,
		ServiceID:       appointment.ServiceID,
		Date:            appointment.Date.Format("2006-01-02"),
		StartTime:       appointment.StartTime,
		EndTime:         appointment.EndTime,
		Status:          string(appointment.Status),
		CalendarEventID: appointment.CalendarEventID,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	// Include denormalized names when relations are loaded
	if appointment.Patient.FullName != "" {
		response.PatientName = appointment.Patient.FullName
	}
	if appointment.Service.Name != "" {
		response.ServiceName = appointment.Service.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
