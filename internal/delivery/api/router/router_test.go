package router_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zenlit/config"
	"zenlit/internal/delivery/api"
	"zenlit/internal/delivery/api/middleware"
	"zenlit/internal/delivery/api/router"
	"zenlit/internal/delivery/api/router/handler"
	"zenlit/internal/domain/entity"
	domainerrors "zenlit/internal/domain/errors"
	"zenlit/internal/domain/service"
	mockSvc "zenlit/internal/mocks/service"
	mockUsecase "zenlit/internal/mocks/usecase"
	"zenlit/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const triggerPath = "/functions/v1/update-anonymity"

type testDeps struct {
	anonymityUC *mockUsecase.MockAnonymityUsecase
	locationUC  *mockUsecase.MockLocationUsecase
	tokenSvc    *mockSvc.MockTokenService
}

func setupServer(t *testing.T, requireServiceRole bool) (*echo.Echo, *testDeps) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Anonymity: &config.AnonymityConfig{RequireServiceRole: requireServiceRole}}

	deps := &testDeps{
		anonymityUC: mockUsecase.NewMockAnonymityUsecase(t),
		locationUC:  mockUsecase.NewMockLocationUsecase(t),
		tokenSvc:    mockSvc.NewMockTokenService(t),
	}

	e := api.NewEcho(cfg, logger)
	router.NewRouter(router.RouterParams{
		AnonymityHandler: handler.NewAnonymityHandler(handler.AnonymityHandlerParams{AnonymityUC: deps.anonymityUC, Logger: logger}),
		LocationHandler:  handler.NewLocationHandler(handler.LocationHandlerParams{LocationUC: deps.locationUC, Logger: logger}),
		HealthHandler:    handler.NewHealthHandler(handler.HealthHandlerParams{Logger: logger}),
		AuthMiddleware:   middleware.NewAuthMiddleware(deps.tokenSvc),
		Config:           cfg,
	}).RegisterRoutes(e)

	return e, deps
}

func serve(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func assertFunctionCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, GET, OPTIONS, PUT, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestUpdateAnonymity_Preflight(t *testing.T) {
	e, _ := setupServer(t, true)

	req := httptest.NewRequest(http.MethodOptions, triggerPath, nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assertFunctionCORS(t, rec)
}

func TestUpdateAnonymity_AnyMethodRunsJob(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			e, deps := setupServer(t, false)
			deps.anonymityUC.EXPECT().RecalculateAll(mock.Anything).Return(&usecase.RecalculationResult{Scanned: 5, Updated: 2}, nil)

			rec := serve(e, method, triggerPath, "", "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"success":true,"updatedCount":2}`, rec.Body.String())
			assertFunctionCORS(t, rec)
		})
	}
}

func TestUpdateAnonymity_ZeroUpdatesStillReportsCount(t *testing.T) {
	e, deps := setupServer(t, false)
	deps.anonymityUC.EXPECT().RecalculateAll(mock.Anything).Return(&usecase.RecalculationResult{Scanned: 3}, nil)

	rec := serve(e, http.MethodPost, triggerPath, "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"updatedCount":0}`, rec.Body.String())
}

func TestUpdateAnonymity_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "conversation load failure",
			err:        domainerrors.ErrConversationsLoadFailed.WithDetails("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"failed to load conversations: connection refused"}`,
		},
		{
			name:       "run in progress",
			err:        domainerrors.ErrRecalculationInProgress,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"an anonymity recalculation is already running"}`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("recalculation interrupted: context deadline exceeded"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"recalculation interrupted: context deadline exceeded"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, deps := setupServer(t, false)
			deps.anonymityUC.EXPECT().RecalculateAll(mock.Anything).Return(nil, tt.err)

			rec := serve(e, http.MethodPost, triggerPath, "", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assertFunctionCORS(t, rec)
		})
	}
}

func TestUpdateAnonymity_RequireServiceRole(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		e, _ := setupServer(t, true)

		rec := serve(e, http.MethodPost, triggerPath, "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"missing or invalid credentials: authorization header is missing"}`, rec.Body.String())
		assertFunctionCORS(t, rec)
	})

	t.Run("user token", func(t *testing.T) {
		e, deps := setupServer(t, true)
		deps.tokenSvc.EXPECT().ValidateToken("user-token").Return(&service.Claims{UserID: uuid.New(), Roles: []string{"user"}}, nil)

		rec := serve(e, http.MethodPost, triggerPath, "user-token", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("service token", func(t *testing.T) {
		e, deps := setupServer(t, true)
		deps.tokenSvc.EXPECT().ValidateToken("service-token").Return(&service.Claims{UserID: uuid.New(), Roles: []string{"service"}}, nil)
		deps.anonymityUC.EXPECT().RecalculateAll(mock.Anything).Return(&usecase.RecalculationResult{Updated: 1}, nil)

		rec := serve(e, http.MethodPost, triggerPath, "service-token", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"updatedCount":1}`, rec.Body.String())
	})
}

func TestLocationRoutes(t *testing.T) {
	userID := uuid.New()
	lat, long := 12.971, 77.594

	t.Run("update", func(t *testing.T) {
		e, deps := setupServer(t, false)
		deps.tokenSvc.EXPECT().ValidateToken("t").Return(&service.Claims{UserID: userID, Roles: []string{"user"}}, nil)
		deps.locationUC.EXPECT().
			UpdateLocation(mock.Anything, userID, &usecase.UpdateLocationInput{Latitude: 12.97194, Longitude: 77.59451}).
			Return(&usecase.LocationUpdateResult{
				Location:             &entity.Location{UserID: userID, LatShort: &lat, LongShort: &long},
				UpdatedConversations: 3,
			}, nil)

		rec := serve(e, http.MethodPut, "/api/v1/locations/me", "t", `{"latitude":12.97194,"longitude":77.59451}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"updated_conversations":3`)
		assert.Contains(t, rec.Body.String(), `"sharing":true`)
	})

	t.Run("validation", func(t *testing.T) {
		e, deps := setupServer(t, false)
		deps.tokenSvc.EXPECT().ValidateToken("t").Return(&service.Claims{UserID: userID}, nil)

		rec := serve(e, http.MethodPut, "/api/v1/locations/me", "t", `{"latitude":95,"longitude":10}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"VALIDATION_FAILED"`)
	})

	t.Run("not found", func(t *testing.T) {
		e, deps := setupServer(t, false)
		deps.tokenSvc.EXPECT().ValidateToken("t").Return(&service.Claims{UserID: userID}, nil)
		deps.locationUC.EXPECT().GetLocation(mock.Anything, userID).Return(nil, domainerrors.ErrLocationNotFound)

		rec := serve(e, http.MethodGet, "/api/v1/locations/me", "t", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"LOCATION_NOT_FOUND"`)
	})

	t.Run("clear", func(t *testing.T) {
		e, deps := setupServer(t, false)
		deps.tokenSvc.EXPECT().ValidateToken("t").Return(&service.Claims{UserID: userID}, nil)
		deps.locationUC.EXPECT().ClearLocation(mock.Anything, userID).Return(&usecase.LocationUpdateResult{
			Location: &entity.Location{UserID: userID},
		}, nil)

		rec := serve(e, http.MethodDelete, "/api/v1/locations/me", "t", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sharing":false`)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		e, _ := setupServer(t, false)

		rec := serve(e, http.MethodGet, "/api/v1/locations/me", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})
}

func TestHealth(t *testing.T) {
	e, _ := setupServer(t, false)

	rec := serve(e, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
