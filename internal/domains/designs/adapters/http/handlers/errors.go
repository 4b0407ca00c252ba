package handlers

import (
	"errors"

	designsapp "github.com/Apurer/garment-studio/internal/domains/designs/application"
	apierrors "github.com/Apurer/garment-studio/internal/shared/errors"
)

// ProblemFor maps design service errors to Problem Details. The detail is the
// shopper-facing message so clients can show it verbatim.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	var problem apierrors.ProblemDetail
	switch {
	case errors.Is(err, designsapp.ErrInvalidSelection):
		return apierrors.ErrInvalidSelection.WithDetail(err.Error()), true
	case errors.Is(err, designsapp.ErrValidation):
		problem = apierrors.ErrValidation
	case errors.Is(err, designsapp.ErrConcurrentRequestRejected):
		problem = apierrors.ErrConflict
	case errors.Is(err, designsapp.ErrRateLimited):
		problem = apierrors.ErrRateLimited
	case errors.Is(err, designsapp.ErrPaymentRequired):
		problem = apierrors.ErrPaymentRequired
	case errors.Is(err, designsapp.ErrGenerationFailed):
		problem = apierrors.ErrUpstream
	case errors.Is(err, designsapp.ErrUnauthenticated):
		problem = apierrors.ErrUnauthorized
	case errors.Is(err, designsapp.ErrPersistence):
		problem = apierrors.ErrUnavailable
	case errors.Is(err, designsapp.ErrSessionNotFound):
		return apierrors.NewNotFoundProblem("design session", notFoundID(err)), true
	case errors.Is(err, designsapp.ErrDesignNotFound):
		return apierrors.NewNotFoundProblem("saved design", notFoundID(err)), true
	default:
		return apierrors.ProblemDetail{}, false
	}
	return problem.WithDetail(designsapp.UserMessage(err)), true
}

func notFoundID(err error) string {
	var notFound *designsapp.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.ID
	}
	return ""
}
