package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/delivery-scheduler/internal/config"
	"github.com/BruksfildServices01/delivery-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/middleware"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

const secret = "routes-secret"

type app struct {
	t        *testing.T
	r        *gin.Engine
	f        dbtest.Fixture
	mr       *miniredis.Miniredis
	shutdown func()
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	f := dbtest.Seed(t, gdb, "UTC")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	shutdown := RegisterRoutes(r, Deps{
		DB:    gdb,
		Redis: rdb,
		Config: &config.Config{
			Env:          "development",
			JWTSecret:    secret,
			SlotCacheTTL: time.Minute,
		},
		Logger: zerolog.Nop(),
	})

	return &app{t: t, r: r, f: f, mr: mr, shutdown: shutdown}
}

func (a *app) token(u models.User) string {
	a.t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            u.ID,
		"organizationId": u.OrganizationID,
		"role":           u.Role,
		"exp":            time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(a.t, err)
	return tok
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	defer a.shutdown()

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "delivery_scheduler_availability_resolve_seconds")
}

func TestSecuredRoutesNeedToken(t *testing.T) {
	a := newApp(t)
	defer a.shutdown()

	w := a.do(http.MethodGet, "/api/appointments?date=2030-03-12", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/public/offerings/%d/slots?date=2030-03-12", a.f.Offering.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingFlowThroughRoutes(t *testing.T) {
	a := newApp(t)
	defer a.shutdown()

	supplier := a.token(a.f.Supplier)
	admin := a.token(a.f.Admin)
	slotsPath := fmt.Sprintf("/api/offerings/%d/slots?date=2030-03-12", a.f.Offering.ID)

	// popula o cache
	w := a.do(http.MethodGet, slotsPath, supplier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, a.mr.Keys())

	w = a.do(http.MethodPost, "/api/appointments", supplier, gin.H{
		"service_offering_id": a.f.Offering.ID,
		"date":                "2030-03-12",
		"time":                "09:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	// criação invalida o dia
	assert.Empty(t, a.mr.Keys())

	w = a.do(http.MethodGet, slotsPath, supplier, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"start":"09:00"`)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/appointments/%d/approve", ap.ID), supplier, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, fmt.Sprintf("/api/appointments/%d/approve", ap.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, fmt.Sprintf("/api/appointments/%d/request-cancellation", ap.ID), supplier,
		gin.H{"reason": "no truck"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, fmt.Sprintf("/api/appointments/%d/reject-cancellation", ap.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)

	// negação vai para o audit de forma assíncrona; shutdown drena a fila
	a.shutdown()
	a.shutdown = func() {}

	w = a.do(http.MethodGet, "/api/audit-logs?action=transition_denied", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var logs struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Equal(t, 1, logs.Total)
}

func TestRuleChangeClearsSlotCache(t *testing.T) {
	a := newApp(t)
	defer a.shutdown()

	admin := a.token(a.f.Admin)
	slotsPath := fmt.Sprintf("/api/offerings/%d/slots?date=2030-03-12", a.f.Offering.ID)

	w := a.do(http.MethodGet, slotsPath, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, a.mr.Keys())

	w = a.do(http.MethodPost, fmt.Sprintf("/api/offerings/%d/exception-rules", a.f.Offering.ID), admin, gin.H{
		"kind": "BLOCK_WHOLE_DAY",
		"date": "2030-03-12",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, a.mr.Keys())

	w = a.do(http.MethodGet, slotsPath, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}
