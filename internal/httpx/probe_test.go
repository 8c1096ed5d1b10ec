package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
	"github.com/nwpfetch/nwpfetch/internal/httpx"
	"github.com/stretchr/testify/require"
)

func coreerrID() coreerr.Identity { return coreerr.Identity{Model: "test"} }

func TestExistsHonorsStatusAndFloor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/big":
			w.Header().Set("Content-Length", "1024")
			w.WriteHeader(http.StatusOK)
		case "/empty":
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := httpx.NewClient()
	require.True(t, c.Exists(context.Background(), srv.URL+"/big", 1))
	require.False(t, c.Exists(context.Background(), srv.URL+"/empty", 1))
	require.False(t, c.Exists(context.Background(), srv.URL+"/missing", 1))
}

func TestGetRangeRequiresPartialContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng := r.Header.Get("Range")
		require.Equal(t, "bytes=0-9", rng)
		w.WriteHeader(http.StatusOK) // not 206 -> RangeUnsupported
	}))
	defer srv.Close()

	c := httpx.NewClient()
	var sb strings.Builder
	_, err := c.GetRange(context.Background(), srv.URL, 0, 9, &sb, 1, coreerrID())
	require.Error(t, err)
}
