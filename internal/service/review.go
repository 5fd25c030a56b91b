package service

import (
	"context"

	"github.com/tteslee/fundamental/internal"
	"github.com/tteslee/fundamental/internal/review"
)

type ReviewRequest struct {
	Period  string            `json:"period" validate:"required,oneof=daily weekly"`
	Records []internal.Record `json:"records" validate:"required,min=1"`
}

func ValidateReviewRequest(body *ReviewRequest) error {
	return validate.Struct(body)
}

// GenerateReview asks the external generator for a review and falls back to
// the locally computed one on any failure, so the caller always gets a
// fully populated review.
func GenerateReview(ctx context.Context, gen review.Generator, logger internal.Logger, body *ReviewRequest) *review.AIReview {
	period := review.Period(body.Period)

	req, err := review.BuildRequest(period, body.Records)
	if err != nil {
		logger.Warnf("review request build failed, serving fallback: %v", err)
		return review.BuildFallback(period, body.Records)
	}

	result, err := gen.Generate(ctx, req)
	if err != nil {
		logger.Warnf("review generation failed, serving fallback: %v", err)
		return review.BuildFallback(period, body.Records)
	}
	return result
}
