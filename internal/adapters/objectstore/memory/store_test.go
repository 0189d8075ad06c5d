package memory

import (
	"context"
	"testing"

	"pet-translator/internal/ports/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_NoUpsertRejectsDuplicate(t *testing.T) {
	s := New("http://localhost/audio/")
	ctx := context.Background()

	in := storage.UploadInput{Key: "u/1.webm", ContentType: "audio/webm", Data: []byte("a")}
	require.NoError(t, s.Upload(ctx, in))
	assert.ErrorIs(t, s.Upload(ctx, in), ErrExists)

	in.Upsert = true
	in.Data = []byte("b")
	require.NoError(t, s.Upload(ctx, in))

	data, ct, ok := s.Get("u/1.webm")
	require.True(t, ok)
	assert.Equal(t, "b", string(data))
	assert.Equal(t, "audio/webm", ct)
	assert.Equal(t, "http://localhost/audio/u/1.webm", s.PublicURL("u/1.webm"))
}
