package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	schedule, err := h.availabilityUsecase.GetWeekSchedule(r.Context(), providerID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProviderNotFound):
			response.NotFound(w, "Provider not found")
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *AvailabilityHandler) ReplaceWeekSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	var req dto.ReplaceWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.availabilityUsecase.ReplaceWeek(r.Context(), providerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProviderNotFound):
			response.NotFound(w, "Provider not found")
		case errors.Is(err, usecase.ErrInvalidWindow), errors.Is(err, usecase.ErrDuplicateWindowDay):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to replace schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule replaced successfully", schedule)
}
