package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	schedulingUsecase usecase.SchedulingUsecase
	validator         *validator.CustomValidator
}

func NewAppointmentHandler(schedulingUsecase usecase.SchedulingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		schedulingUsecase: schedulingUsecase,
		validator:         validator,
	}
}

func (h *AppointmentHandler) CreateAppointments(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.schedulingUsecase.CreateRecurringAppointments(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentQuota):
			response.ErrorWithCode(w, http.StatusConflict, response.CodeAppointmentQuota, "Appointment limit reached for the current plan")
		case errors.Is(err, usecase.ErrSlotConflict):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, usecase.ErrProviderUnavailable):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, usecase.ErrSlotPastMidnight):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrProviderNotFound):
			response.NotFound(w, "Provider not found")
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to create appointments")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointments created successfully", result)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.schedulingUsecase.Cancel(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentNotActive):
			response.Error(w, http.StatusConflict, "Appointment is not active", nil)
		case errors.Is(err, usecase.ErrCalendarDeleteFailed):
			response.Error(w, http.StatusInternalServerError, "Appointment cancelled but the calendar event could not be removed", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) FinalizeAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.FinalizeAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.schedulingUsecase.Finalize(r.Context(), appointmentID, &req); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrAppointmentNotActive):
			response.Error(w, http.StatusBadRequest, "Appointment is not active", nil)
		default:
			response.InternalServerError(w, "Failed to finalize appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment finalized successfully", nil)
}

func (h *AppointmentHandler) GetDayAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	dateParam := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid or missing date, use YYYY-MM-DD", nil)
		return
	}

	result, err := h.schedulingUsecase.GetDayAvailability(r.Context(), providerID, date)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", result)
}
