package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/config"
	"github.com/BruksfildServices01/rental-platform/internal/db"
)

const secret = "test-secret"

type apiClient struct {
	t *testing.T
	r *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		JWTSecret: secret,
		Timezone:  "UTC",
		Viewing: config.ViewingConfig{
			BufferMinutes: 30,
			DayStart:      "09:00",
			DayEnd:        "18:00",
			StepMinutes:   30,
		},
	}

	dispatcher := audit.NewDispatcher(log)
	t.Cleanup(func() { _ = dispatcher.Close(context.Background()) })

	r := gin.New()
	RegisterRoutes(r, Deps{DB: gdb, Config: cfg, Logger: log, Audit: dispatcher})
	return &apiClient{t: t, r: r}
}

func token(t *testing.T, user uuid.UUID) string {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": user.String()}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func (a *apiClient) do(method, path string, user uuid.UUID, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if user != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+token(a.t, user))
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (a *apiClient) createShortTerm(owner uuid.UUID) string {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/api/properties", owner, map[string]any{
		"title":           "Harbour loft",
		"property_type":   "short_term",
		"price_per_night": "100",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return body["id"].(string)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	api := newAPI(t)
	owner, guest, other := uuid.New(), uuid.New(), uuid.New()
	propertyID := api.createShortTerm(owner)

	w, body := api.do(http.MethodGet, "/api/properties/"+propertyID+"/availability?check_in=2025-06-01&check_out=2025-06-04", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["available"])

	w, body = api.do(http.MethodPost, "/api/bookings", guest, map[string]any{
		"property_id":    propertyID,
		"check_in_date":  "2025-06-01",
		"check_out_date": "2025-06-04",
		"num_guests":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "300", body["total_amount"])
	assert.Equal(t, "pending", body["booking_status"])
	bookingID := body["id"].(string)

	w, body = api.do(http.MethodPost, "/api/bookings", other, map[string]any{
		"property_id":    propertyID,
		"check_in_date":  "2025-06-03",
		"check_out_date": "2025-06-06",
		"num_guests":     1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "booking_conflict", body["error_code"])

	w, body = api.do(http.MethodGet, "/api/properties/"+propertyID+"/available/2025-06-03", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["available"])

	_, body = api.do(http.MethodGet, "/api/properties/"+propertyID+"/available/2025-06-04", uuid.Nil, nil)
	assert.Equal(t, true, body["available"])

	w, _ = api.do(http.MethodPost, "/api/bookings/"+bookingID+"/confirm", guest, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = api.do(http.MethodPost, "/api/bookings/"+bookingID+"/confirm", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", body["booking_status"])

	w, _ = api.do(http.MethodGet, "/api/bookings/"+bookingID, other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = api.do(http.MethodGet, "/api/properties/"+propertyID+"/bookings", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])
}

func TestBlockedDatesOverHTTP(t *testing.T) {
	api := newAPI(t)
	owner := uuid.New()
	propertyID := api.createShortTerm(owner)

	w, _ := api.do(http.MethodPost, "/api/properties/"+propertyID+"/availability-blocks", owner, map[string]any{
		"available_from": "2025-07-10",
		"available_to":   "2025-07-12",
		"is_available":   false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	_, body := api.do(http.MethodGet, "/api/properties/"+propertyID+"/availability?check_in=2025-07-12&check_out=2025-07-14", uuid.Nil, nil)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "dates_blocked", body["reason"])

	_, body = api.do(http.MethodGet, "/api/properties/"+propertyID+"/availability?check_in=2025-07-13&check_out=2025-07-14", uuid.Nil, nil)
	assert.Equal(t, true, body["available"])

	w, _ = api.do(http.MethodPost, "/api/properties/"+propertyID+"/availability-blocks", uuid.New(), map[string]any{
		"available_from": "2025-07-10",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBlockWithoutFlagIsOpenPeriod(t *testing.T) {
	api := newAPI(t)
	owner := uuid.New()
	propertyID := api.createShortTerm(owner)

	w, body := api.do(http.MethodPost, "/api/properties/"+propertyID+"/availability-blocks", owner, map[string]any{
		"available_from": "2025-07-10",
		"available_to":   "2025-07-12",
		"notes":          "summer season",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["is_available"])

	_, body = api.do(http.MethodGet, "/api/properties/"+propertyID+"/availability?check_in=2025-07-10&check_out=2025-07-11", uuid.Nil, nil)
	assert.Equal(t, true, body["available"])
}

func TestQuoteOverHTTP(t *testing.T) {
	api := newAPI(t)
	owner := uuid.New()
	propertyID := api.createShortTerm(owner)

	w, _ := api.do(http.MethodPut, "/api/properties/"+propertyID+"/short-term", owner, map[string]any{
		"cleaning_fee":    "50",
		"extra_guest_fee": "20",
		"pet_fee":         "15",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body := api.do(http.MethodGet, "/api/properties/"+propertyID+"/quote?nights=3&guests=4&pets=1", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "405", body["total"])
}

func TestViewingFlowOverHTTP(t *testing.T) {
	api := newAPI(t)
	owner, agent, applicant := uuid.New(), uuid.New(), uuid.New()
	propertyID := api.createShortTerm(owner)

	w, body := api.do(http.MethodGet, "/api/agents/"+agent.String()+"/slots?date=2025-06-10", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["slots"], 19)

	w, _ = api.do(http.MethodPost, "/api/viewings", applicant, map[string]any{
		"property_id":    propertyID,
		"agent_id":       agent.String(),
		"scheduled_date": "2025-06-10T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body = api.do(http.MethodPost, "/api/viewings", uuid.New(), map[string]any{
		"property_id":    propertyID,
		"agent_id":       agent.String(),
		"scheduled_date": "2025-06-10T10:45:00Z",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "agent_unavailable", body["error_code"])

	_, body = api.do(http.MethodGet, "/api/agents/"+agent.String()+"/slots?date=2025-06-10", uuid.Nil, nil)
	assert.Len(t, body["slots"], 18)

	_, body = api.do(http.MethodGet, "/api/agents/"+agent.String()+"/conflicts?start=2025-06-10T11:00:00Z&duration=30", uuid.Nil, nil)
	assert.Equal(t, false, body["has_conflict"])
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	api := newAPI(t)
	w, _ := api.do(http.MethodPost, "/api/bookings", uuid.Nil, map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = api.do(http.MethodGet, "/api/audit-logs", uuid.New(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
