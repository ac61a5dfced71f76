package services

import (
	"errors"
	"net/http"
)

// Paylaşım API'sinin hata kodları.
const (
	ShareCodeInvalidID        = "invalid_id"
	ShareCodeNotFound         = "not_found"
	ShareCodeNotFoundOrDenied = "not_found_or_denied"
	ShareCodeInvalidInput     = "invalid_input"
	ShareCodeUnauthorized     = "unauthorized"
	ShareCodeSaveFailed       = "save_failed"
	ShareCodeRequestFailed    = "request_failed"
)

// ErrorResponse başarısız paylaşım API yanıtı.
type ErrorResponse struct {
	Success  bool   `json:"success"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
	NotFound bool   `json:"notFound"`
}

type CreateShareResponse struct {
	Success bool `json:"success"`
	CreateShareResult
}

type ShareViewResponse struct {
	Success bool `json:"success"`
	ShareView
}

type UserSharesResponse struct {
	Success bool `json:"success"`
	UserSharesResult
}

type ShareAnalyticsResponse struct {
	Success bool `json:"success"`
	ShareAnalytics
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

var shareErrorCodes = []struct {
	err    ShareServiceError
	code   string
	status int
}{
	{ErrShareInvalidID, ShareCodeInvalidID, http.StatusBadRequest},
	{ErrShareNotFound, ShareCodeNotFound, http.StatusNotFound},
	{ErrShareNotFoundOrDenied, ShareCodeNotFoundOrDenied, http.StatusNotFound},
	{ErrShareInvalidInput, ShareCodeInvalidInput, http.StatusBadRequest},
	{ErrShareUnauthorized, ShareCodeUnauthorized, http.StatusUnauthorized},
	{ErrShareSaveFailed, ShareCodeSaveFailed, http.StatusInternalServerError},
	{ErrShareRequestFailed, ShareCodeRequestFailed, http.StatusBadGateway},
}

// ShareErrorResponse hatayı API yanıtına ve HTTP durumuna çevirir.
func ShareErrorResponse(err error) (ErrorResponse, int) {
	for _, e := range shareErrorCodes {
		if errors.Is(err, e.err) {
			return ErrorResponse{
				Success:  false,
				Code:     e.code,
				Error:    err.Error(),
				NotFound: e.err == ErrShareNotFound || e.err == ErrShareNotFoundOrDenied,
			}, e.status
		}
	}
	return ErrorResponse{Success: false, Code: ShareCodeRequestFailed, Error: ErrShareRequestFailed.Error()}, http.StatusInternalServerError
}

// Err yanıttaki kodu servis hatasına geri çevirir.
func (r ErrorResponse) Err() error {
	for _, e := range shareErrorCodes {
		if e.code == r.Code {
			return e.err
		}
	}
	if r.NotFound {
		return ErrShareNotFound
	}
	return ErrShareRequestFailed
}
