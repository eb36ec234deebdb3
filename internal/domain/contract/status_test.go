package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

func TestSignFlow(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c := &models.Contract{ContractStatus: string(StatusDraft)}

	assert.True(t, httperr.IsBusiness(Sign(c, SignerTenant, now), "invalid_state"))

	require.NoError(t, Send(c))
	require.NoError(t, Sign(c, SignerTenant, now))
	assert.Equal(t, "partially_signed", c.ContractStatus)
	assert.Nil(t, c.FullyExecutedAt)

	assert.True(t, httperr.IsBusiness(Sign(c, SignerTenant, now), "already_signed"))

	later := now.Add(time.Hour)
	require.NoError(t, Sign(c, SignerLandlord, later))
	assert.Equal(t, "completed", c.ContractStatus)
	assert.Equal(t, later, *c.FullyExecutedAt)

	assert.Error(t, Expire(c))
}

func TestSendOnlyFromDraft(t *testing.T) {
	c := &models.Contract{ContractStatus: string(StatusSent)}
	assert.True(t, httperr.IsKind(Send(c), httperr.KindConflict))
}

func TestParseSigner(t *testing.T) {
	s, err := ParseSigner("landlord")
	require.NoError(t, err)
	assert.Equal(t, SignerLandlord, s)

	_, err = ParseSigner("agent")
	assert.True(t, httperr.IsBusiness(err, "invalid_signer"))
}
