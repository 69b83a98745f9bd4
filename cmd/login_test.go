package cmd

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/atlog/internal/api"
	"github.com/sstent/atlog/internal/config"
	"github.com/sstent/atlog/internal/session"
)

func newTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:     baseURL,
		SessionPath: filepath.Join(t.TempDir(), "session.json"),
		HTTPTimeout: 5 * time.Second,
		RateLimit:   time.Millisecond,
	}
}

func newTestClient(t *testing.T, cfg *config.Config) *api.Client {
	t.Helper()
	return api.NewClient(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestLoginUnauthorizedPersistsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "Usuário ou senha incorretos"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := newTestConfig(t, server.URL)
	client := newTestClient(t, cfg)

	var out bytes.Buffer
	err := doLogin(context.Background(), cfg, client, "ana", "wrong", &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usuário ou senha incorretos")

	_, statErr := os.Stat(cfg.SessionPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "a 401 must not persist any credentials")

	sess, err := session.NewStore(cfg.SessionPath).Load()
	require.NoError(t, err)
	assert.Nil(t, sess, "a 401 must leave the session unset")
}

func TestLoginSuccessRunsInitialLoads(t *testing.T) {
	var listings, typeLoads atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/atividades":
			listings.Add(1)
			w.Write([]byte(`[
				{"id": 1, "data_hora": "02/06/2024 - 08:15:00", "localizacao": "PT",
				 "nome_local": "Porto", "tipo_codigo": 1, "tipo_texto": "Carga",
				 "kilometragem": 12, "foto_url": null}
			]`))
		case "/tipos_atividade":
			typeLoads.Add(1)
			w.Write([]byte(`[{"codigo": 1, "nome": "Carga"}]`))
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	cfg := newTestConfig(t, server.URL)
	client := newTestClient(t, cfg)

	var out bytes.Buffer
	err := doLogin(context.Background(), cfg, client, "ana", "s3cret", &out)
	require.NoError(t, err)

	// Probe plus exactly one initial listing, exactly one types load.
	assert.Equal(t, int32(2), listings.Load())
	assert.Equal(t, int32(1), typeLoads.Load())

	sess, err := session.NewStore(cfg.SessionPath).Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ana", sess.Username)
	assert.Equal(t, "s3cret", sess.Password)
	assert.Equal(t, api.CountryPT, sess.Country)

	assert.Contains(t, out.String(), "Logged in as ana")
	assert.Contains(t, out.String(), "Porto")
}
