package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"code.sztanpet.net/zvpsz/rrc/internal/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "buzzer-demo.log")

	require.NoError(t, file.Append(path, []byte("one\n")))
	require.NoError(t, file.Append(path, []byte("two\n")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(b))
}

func TestAppendNotADirectory(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(parent, nil, 0600))

	assert.Error(t, file.Append(filepath.Join(parent, "x.log"), []byte("x")))
}
