package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/stretchr/testify/require"
)

func TestListAgentTypesFromDirectory(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"code":7,"name":"Service"},{"code":8,"name":"Bot"}]`))
	}))
	defer srv.Close()

	svc := &AgentTypesService{URL: srv.URL}
	types := svc.ListAgentTypes(context.Background())
	require.Equal(t, []domain.AgentType{
		{Code: 7, Name: "Service"},
		{Code: 8, Name: "Bot"},
	}, types)
}

func TestListAgentTypesFallsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fallback := domain.DefaultAgentTypes()

	t.Run("no url configured", func(t *testing.T) {
		svc := &AgentTypesService{}
		require.Equal(t, fallback, svc.ListAgentTypes(ctx))
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		svc := &AgentTypesService{URL: srv.URL}
		require.Equal(t, fallback, svc.ListAgentTypes(ctx))
	})

	t.Run("upstream garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		svc := &AgentTypesService{URL: srv.URL}
		require.Equal(t, fallback, svc.ListAgentTypes(ctx))
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		svc := &AgentTypesService{URL: "http://127.0.0.1:1"}
		require.Equal(t, fallback, svc.ListAgentTypes(ctx))
	})
}
