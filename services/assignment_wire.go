package services

import (
	"errors"
	"net/http"

	"vcard.link/models"
	"vcard.link/pkg/cardcatalog"
)

// Şablon API'sinin hata kodları.
const (
	AssignmentCodeUnauthorized    = "unauthorized"
	AssignmentCodeUnknownTemplate = "unknown_template"
	AssignmentCodeNotAllowed      = "template_not_allowed"
	AssignmentCodeNotFound        = "not_found"
	AssignmentCodeInvalidInput    = "invalid_input"
	AssignmentCodeSaveFailed      = "save_failed"
)

// TemplatesResponse GET /api/visiting-card/templates yanıtı.
type TemplatesResponse struct {
	Success bool `json:"success"`
	Resolution
	Templates []cardcatalog.Entry `json:"templates"`
}

type AssignmentResponse struct {
	Success    bool               `json:"success"`
	Assignment *models.Assignment `json:"assignment"`
}

var assignmentErrorCodes = []struct {
	err    AssignmentServiceError
	code   string
	status int
}{
	{ErrUnableToDetermineUser, AssignmentCodeUnauthorized, http.StatusUnauthorized},
	{ErrUnknownTemplate, AssignmentCodeUnknownTemplate, http.StatusBadRequest},
	{ErrTemplateNotAllowed, AssignmentCodeNotAllowed, http.StatusForbidden},
	{ErrAssignmentNotFound, AssignmentCodeNotFound, http.StatusNotFound},
	{ErrAssignmentInvalidInput, AssignmentCodeInvalidInput, http.StatusBadRequest},
	{ErrAssignmentSaveFailed, AssignmentCodeSaveFailed, http.StatusInternalServerError},
}

// AssignmentErrorResponse atama hatasını API yanıtına ve HTTP durumuna çevirir.
func AssignmentErrorResponse(err error) (ErrorResponse, int) {
	for _, e := range assignmentErrorCodes {
		if errors.Is(err, e.err) {
			return ErrorResponse{
				Code:     e.code,
				Error:    err.Error(),
				NotFound: e.err == ErrAssignmentNotFound,
			}, e.status
		}
	}
	return ErrorResponse{Code: AssignmentCodeSaveFailed, Error: "template request failed"}, http.StatusInternalServerError
}
