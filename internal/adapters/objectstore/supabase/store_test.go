package supabase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-translator/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_SendsObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/pet-audio/u-1/1700000000000.webm", r.URL.Path)
		assert.Equal(t, "audio/webm", r.Header.Get("Content-Type"))
		assert.Equal(t, "false", r.Header.Get("x-upsert"))
		assert.Equal(t, "Bearer svc", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, "audio-bytes", string(b))
		_, _ = w.Write([]byte(`{"Key":"pet-audio/u-1/1700000000000.webm"}`))
	}))
	defer srv.Close()

	s, err := New(Config{URL: srv.URL, ServiceKey: "svc", Bucket: "pet-audio"})
	require.NoError(t, err)

	err = s.Upload(context.Background(), storage.UploadInput{
		Key:         "u-1/1700000000000.webm",
		ContentType: "audio/webm",
		Data:        []byte("audio-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/pet-audio/u-1/1700000000000.webm", s.PublicURL("u-1/1700000000000.webm"))
}

func TestUpload_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Duplicate"}`, http.StatusConflict)
	}))
	defer srv.Close()

	s, err := New(Config{URL: srv.URL, ServiceKey: "svc", Bucket: "pet-audio"})
	require.NoError(t, err)
	assert.Error(t, s.Upload(context.Background(), storage.UploadInput{Key: "a/b.webm"}))
}
