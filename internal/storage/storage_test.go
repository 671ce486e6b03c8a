package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads/")
	ctx := context.Background()

	url, err := s.Save(ctx, ".PNG", strings.NewReader("fake image"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/evidence/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, "evidence", name))
	require.NoError(t, err)
	assert.Equal(t, "fake image", string(data))

	require.NoError(t, s.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "evidence", name))
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, s.Delete(ctx, url))
}

func TestLocalStorage_SaveGivesUniqueNames(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "uploads")
	a, err := s.Save(context.Background(), ".pdf", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), ".pdf", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStorage_DeleteRejectsForeignURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads")
	for _, url := range []string{
		"/static/evidence/a.png",
		"/uploads/evidence/",
		"/uploads/evidence/../secret.txt",
		"/uploads/other/a.png",
	} {
		assert.Error(t, s.Delete(context.Background(), url), url)
	}
}
