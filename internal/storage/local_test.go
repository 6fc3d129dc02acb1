package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveOpenDelete(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := DocumentKey(7, "contract.pdf")
	assert.True(t, strings.HasPrefix(key, "clients/7/"))

	size, err := l.Save(ctx, key, strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	rc, err := l.Open(ctx, key)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, l.Delete(ctx, key))
	_, err = l.Open(ctx, key)
	assert.Error(t, err)

	// Deleting a missing key is fine.
	require.NoError(t, l.Delete(ctx, key))
}

func TestLocalDeletePrefix(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	keyA := DocumentKey(7, "a.txt")
	keyB := DocumentKey(7, "b.txt")
	keyOther := DocumentKey(8, "c.txt")
	for _, key := range []string{keyA, keyB, keyOther} {
		_, err := l.Save(ctx, key, strings.NewReader("x"), "text/plain")
		require.NoError(t, err)
	}

	require.NoError(t, l.DeletePrefix(ctx, ClientPrefix(7)))

	_, err = l.Open(ctx, keyA)
	assert.Error(t, err)
	_, err = l.Open(ctx, keyB)
	assert.Error(t, err)

	// The other client's folder is untouched.
	rc, err := l.Open(ctx, keyOther)
	require.NoError(t, err)
	rc.Close()
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../escape", "..", "/etc/passwd", "clients/../../escape"} {
		_, err := l.Save(ctx, key, strings.NewReader("x"), "text/plain")
		assert.Error(t, err, key)
		_, err = l.Open(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestDocumentKeyUnique(t *testing.T) {
	a := DocumentKey(1, "report.pdf")
	b := DocumentKey(1, "report.pdf")
	assert.NotEqual(t, a, b, "same file name gets distinct keys")
	assert.True(t, strings.HasSuffix(a, "_report.pdf"))

	// Path segments in the upload name are stripped.
	c := DocumentKey(1, "../../evil.sh")
	assert.True(t, strings.HasPrefix(c, "clients/1/"))
	assert.True(t, strings.HasSuffix(c, "_evil.sh"))
	assert.NotContains(t, c, "..")
}
