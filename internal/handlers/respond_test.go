package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"musiclancer/internal/services"
)

func performWithError(t *testing.T, err error) (*http.Response, map[string]interface{}) {
	t.Helper()

	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, reqErr)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestRespondErrorMapsKindsToStatuses(t *testing.T) {
	cases := []struct {
		kind   services.Kind
		status int
	}{
		{services.KindNotFound, http.StatusNotFound},
		{services.KindForbidden, http.StatusForbidden},
		{services.KindQuotaExceeded, http.StatusForbidden},
		{services.KindInvalidState, http.StatusBadRequest},
		{services.KindValidation, http.StatusBadRequest},
		{services.KindConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		resp, body := performWithError(t, &services.Error{Kind: tc.kind, Message: "nope"})
		require.Equal(t, tc.status, resp.StatusCode)
		require.Equal(t, false, body["success"])
		require.Equal(t, "nope", body["error"])
	}
}

func TestRespondErrorMergesDetailIntoPayload(t *testing.T) {
	err := &services.Error{
		Kind:    services.KindConflict,
		Message: "You have already placed a bid on this project. Please update your existing bid.",
		Detail:  map[string]interface{}{"bid_id": int64(7)},
	}

	resp, body := performWithError(t, err)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, float64(7), body["bid_id"])
}

func TestRespondErrorHidesInternalErrors(t *testing.T) {
	resp, body := performWithError(t, errors.New("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "Server error", body["error"])
	require.NotContains(t, body["error"], "connection refused")
}
