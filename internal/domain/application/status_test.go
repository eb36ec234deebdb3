package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func TestTransitionStampsTimes(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	app := &models.RentalApplication{ApplicationStatus: string(StatusSubmitted)}

	require.NoError(t, Transition(app, StatusUnderReview, now))
	assert.Equal(t, now, *app.ReviewedAt)
	assert.Nil(t, app.DecidedAt)

	later := now.Add(time.Hour)
	require.NoError(t, Transition(app, StatusApproved, later))
	assert.Equal(t, later, *app.DecidedAt)
	assert.Equal(t, "approved", app.ApplicationStatus)
}

func TestTransitionRejectsFinalStates(t *testing.T) {
	now := time.Now()
	for _, from := range []Status{StatusApproved, StatusRejected, StatusWithdrawn} {
		app := &models.RentalApplication{ApplicationStatus: string(from)}
		err := Transition(app, StatusUnderReview, now)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), from)
	}

	app := &models.RentalApplication{ApplicationStatus: string(StatusUnderReview)}
	assert.Error(t, Transition(app, StatusSubmitted, now))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("under_review")
	require.NoError(t, err)
	assert.True(t, s.IsActive())

	_, err = ParseStatus("archived")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}
