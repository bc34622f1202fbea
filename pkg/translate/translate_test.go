package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, handler func(req translateRequest) (int, translateResponse)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		code, resp := handler(req)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTranslateMultiple(t *testing.T) {
	srv := newServer(t, func(req translateRequest) (int, translateResponse) {
		assert.Equal(t, "en", req.Source)
		assert.Equal(t, "secret", req.APIKey)
		return http.StatusOK, translateResponse{TranslatedText: req.Target + ":" + req.Q}
	})

	tr := NewLibreTranslate(srv.URL+"/", "secret", zap.NewNop())
	got, err := tr.TranslateMultiple(context.Background(), "Drama", []string{"en", "ru", "az"}, "en")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"en": "Drama", "ru": "ru:Drama", "az": "az:Drama"}, got)
}

func TestTranslateMultiple_PartialFailure(t *testing.T) {
	srv := newServer(t, func(req translateRequest) (int, translateResponse) {
		if req.Target == "az" {
			return http.StatusBadRequest, translateResponse{Error: "az is not supported"}
		}
		return http.StatusOK, translateResponse{TranslatedText: "Драма"}
	})

	tr := NewLibreTranslate(srv.URL, "", zap.NewNop())
	got, err := tr.TranslateMultiple(context.Background(), "Drama", []string{"ru", "az"}, "en")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ru": "Драма"}, got)
}

func TestTranslateMultiple_AllFail(t *testing.T) {
	srv := newServer(t, func(req translateRequest) (int, translateResponse) {
		return http.StatusInternalServerError, translateResponse{Error: "boom"}
	})

	tr := NewLibreTranslate(srv.URL, "", zap.NewNop())
	got, err := tr.TranslateMultiple(context.Background(), "Drama", []string{"ru"}, "en")

	assert.Error(t, err)
	assert.Nil(t, got)
}
