package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (Storage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocal(dir)
	require.NoError(t, err)
	return s, dir
}

func TestLocal_PutGetDelete(t *testing.T) {
	s, dir := newTestLocal(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "abc.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{Size: 8, ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)
	assert.FileExists(t, filepath.Join(dir, "abc.pdf"))

	rc, info, err := s.Get(ctx, "abc.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), info.Size)

	require.NoError(t, s.Delete(ctx, "abc.pdf"))
	_, _, err = s.Get(ctx, "abc.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// a second delete of the same key is tolerated
	assert.NoError(t, s.Delete(ctx, "abc.pdf"))
}

func TestLocal_PutLeavesNoTempFiles(t *testing.T) {
	s, dir := newTestLocal(t)

	_, err := s.Put(context.Background(), "a.txt", strings.NewReader("hello"), PutObjectOptions{Size: -1})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}

func TestLocal_PutSizeMismatch(t *testing.T) {
	s, dir := newTestLocal(t)

	_, err := s.Put(context.Background(), "a.txt", strings.NewReader("hello"), PutObjectOptions{Size: 10})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	s, _ := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "../etc/passwd", "sub/file.txt", `..\x`} {
		_, err := s.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		_, _, err = s.Get(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestNewLocal_RequiresDir(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)
}

func TestNewKey(t *testing.T) {
	a := NewKey("Contract.PDF")
	b := NewKey("Contract.PDF")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.NoError(t, validateKey(a))
	assert.NoError(t, validateKey(NewKey(`C:\docs\runbook.docx`)))
	assert.False(t, strings.Contains(NewKey("noext"), "."))
}

func TestMapMinioErr(t *testing.T) {
	assert.NoError(t, mapMinioErr(nil))
	assert.EqualError(t, mapMinioErr(io.ErrUnexpectedEOF), io.ErrUnexpectedEOF.Error())
}
