package usecase

import (
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/upload"
)

// repoError maps a repository error onto the API error taxonomy.
func repoError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.Internal(err)
	}
}

// storeError maps a failed object store Put. Files the malware scanner
// flagged are the client's fault.
func storeError(err error, msg string) error {
	if errors.Is(err, upload.ErrInfected) {
		return apperror.BadRequest("File was rejected by the malware scanner")
	}
	return apperror.Unavailable(msg, err)
}
