package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

func (h *ProviderHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserQuota):
			response.ErrorWithCode(w, http.StatusConflict, response.CodeUserQuota, "User limit reached for the current plan")
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case errors.Is(err, usecase.ErrLicenseAlreadyExists):
			response.Error(w, http.StatusConflict, "License number already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create provider")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Provider created successfully", provider)
}

func (h *ProviderHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get providers")
		return
	}

	response.Success(w, http.StatusOK, "Providers retrieved successfully", providers)
}
