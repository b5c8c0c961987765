package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

func TestAvailabilityChecker_HasOverlap(t *testing.T) {
	ctx := context.Background()
	checker := service.NewAvailabilityChecker()

	t.Run("Delegates interval test to repository", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("HasOverlapping", ctx, int32(7), "2026-06-13", "2026-06-15").Return(true, nil)

		overlap, err := checker.HasOverlap(ctx, repo, 7, "2026-06-13", "2026-06-15")
		assert.NoError(t, err)
		assert.True(t, overlap)
	})

	t.Run("Free range", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("HasOverlapping", ctx, int32(7), "2026-06-16", "2026-06-18").Return(false, nil)

		overlap, err := checker.HasOverlap(ctx, repo, 7, "2026-06-16", "2026-06-18")
		assert.NoError(t, err)
		assert.False(t, overlap)
	})

	t.Run("Invalid range rejected before hitting storage", func(t *testing.T) {
		repo := new(MockBookingRepo)

		_, err := checker.HasOverlap(ctx, repo, 7, "2026-06-15", "2026-06-13")
		assert.True(t, domain.IsKind(err, domain.ErrValidation))
		repo.AssertNotCalled(t, "HasOverlapping", ctx, int32(7), "2026-06-15", "2026-06-13")
	})

	t.Run("Garbage dates rejected", func(t *testing.T) {
		repo := new(MockBookingRepo)

		_, err := checker.HasOverlap(ctx, repo, 7, "June 13", "2026-06-15")
		assert.True(t, domain.IsKind(err, domain.ErrValidation))
	})
}
