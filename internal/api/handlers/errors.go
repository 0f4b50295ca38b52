package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/whitespace/internal/analysis"
	"github.com/RMahshie/whitespace/internal/charts"
	"github.com/RMahshie/whitespace/internal/repository"
	"github.com/RMahshie/whitespace/internal/storage"
)

// toHumaError maps service errors onto HTTP status codes
func toHumaError(err error, msg string) error {
	var upErr *repository.UpstreamError
	switch {
	case errors.Is(err, analysis.ErrInvalidQuery):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.As(err, &upErr) && upErr.IsClientError():
		detail := upErr.Detail
		if detail == "" {
			detail = msg
		}
		return huma.Error400BadRequest(detail, err)
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, storage.ErrObjectNotFound),
		errors.Is(err, charts.ErrNoData):
		return huma.Error404NotFound(msg+": not found", err)
	case errors.Is(err, repository.ErrUpstream):
		return huma.Error502BadGateway("Scan service unavailable. Please try again.", err)
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("Scan service timed out. Please try again.", err)
	default:
		log.Error().Err(err).Msg(msg)
		return huma.Error500InternalServerError(msg, err)
	}
}
