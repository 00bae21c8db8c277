package applicant

import (
	"net/http"

	"github.com/talentops/funnel/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICANT")

// Error codes
var (
	CodeApplicantNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Applicant not found")
	CodeBadTimestamp      = ErrRegistry.Register("BAD_TIMESTAMP", errx.TypeValidation, http.StatusBadRequest, "Submission timestamp could not be parsed")
	CodeMalformedRow      = ErrRegistry.Register("MALFORMED_ROW", errx.TypeValidation, http.StatusBadRequest, "Row is missing mandatory identity columns")
	CodeSheetUnavailable  = ErrRegistry.Register("SHEET_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Applicant sheet could not be read")
	CodeSyncFailed        = ErrRegistry.Register("SYNC_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Sheet sync failed")
	CodeSearchFailed      = ErrRegistry.Register("SEARCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Applicant search failed")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidPagination = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Invalid pagination parameters")
)

// Helper functions
func ErrApplicantNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicantNotFound)
}

func ErrBadTimestamp() *errx.Error {
	return ErrRegistry.New(CodeBadTimestamp)
}

func ErrMalformedRow() *errx.Error {
	return ErrRegistry.New(CodeMalformedRow)
}

func ErrSheetUnavailable() *errx.Error {
	return ErrRegistry.New(CodeSheetUnavailable)
}

func ErrSyncFailed() *errx.Error {
	return ErrRegistry.New(CodeSyncFailed)
}

func ErrSearchFailed() *errx.Error {
	return ErrRegistry.New(CodeSearchFailed)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}
