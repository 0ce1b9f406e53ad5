package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebulus/blackbox/internal/workspace"
)

func newGuard(t *testing.T) *workspace.Guard {
	t.Helper()
	guard, err := workspace.NewGuard(t.TempDir())
	require.NoError(t, err)
	return guard
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	guard := newGuard(t)
	write := NewWriteTool(guard)
	read := NewReadTool(guard)

	content := "hello\nworld\n\ttabbed"
	args, err := marshalArgs(map[string]string{"path": "notes/today.txt", "content": content})
	require.NoError(t, err)

	result, err := write.Execute(context.Background(), args)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully wrote")
	assert.Contains(t, result, "notes/today.txt")

	got, err := read.Execute(context.Background(), `{"path": "notes/today.txt"}`)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteOverwritesExisting(t *testing.T) {
	guard := newGuard(t)
	write := NewWriteTool(guard)

	_, err := write.Execute(context.Background(), `{"path": "a.txt", "content": "first"}`)
	require.NoError(t, err)
	_, err = write.Execute(context.Background(), `{"path": "a.txt", "content": "second"}`)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(guard.Root(), "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestReadMissingFile(t *testing.T) {
	guard := newGuard(t)
	read := NewReadTool(guard)

	_, err := read.Execute(context.Background(), `{"path": "nope.txt"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadDeniesEscape(t *testing.T) {
	guard := newGuard(t)
	read := NewReadTool(guard)

	_, err := read.Execute(context.Background(), `{"path": "../../etc/passwd"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestEditReplacesFirstOccurrence(t *testing.T) {
	guard := newGuard(t)
	write := NewWriteTool(guard)
	edit := NewEditTool(guard)

	_, err := write.Execute(context.Background(), `{"path": "conf.txt", "content": "port=80\nport=80\n"}`)
	require.NoError(t, err)

	result, err := edit.Execute(context.Background(), `{"path": "conf.txt", "target": "port=80", "replacement": "port=8080"}`)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully edited")

	data, err := os.ReadFile(filepath.Join(guard.Root(), "conf.txt"))
	require.NoError(t, err)
	assert.Equal(t, "port=8080\nport=80\n", string(data))
}

func TestEditFailsWhenTargetGone(t *testing.T) {
	guard := newGuard(t)
	write := NewWriteTool(guard)
	edit := NewEditTool(guard)

	_, err := write.Execute(context.Background(), `{"path": "conf.txt", "content": "timeout=30\n"}`)
	require.NoError(t, err)

	args := `{"path": "conf.txt", "target": "timeout=30", "replacement": "timeout=60"}`
	_, err = edit.Execute(context.Background(), args)
	require.NoError(t, err)

	// Applying the same edit again must fail, not re-edit.
	_, err = edit.Execute(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target string not found")
}

func TestListEmptyDirectory(t *testing.T) {
	guard := newGuard(t)
	list := NewListTool(guard)

	result, err := list.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "(empty directory)", result)
}

func TestListMarksDirectories(t *testing.T) {
	guard := newGuard(t)
	list := NewListTool(guard)

	require.NoError(t, os.MkdirAll(filepath.Join(guard.Root(), "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(guard.Root(), "file.txt"), []byte("x"), 0644))

	result, err := list.Execute(context.Background(), `{"path": "."}`)
	require.NoError(t, err)
	assert.Contains(t, result, "sub/")
	assert.Contains(t, result, "file.txt")
}

func TestDeleteFile(t *testing.T) {
	guard := newGuard(t)
	del := NewDeleteTool(guard)

	path := filepath.Join(guard.Root(), "old.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	result, err := del.Execute(context.Background(), `{"path": "old.txt"}`)
	require.NoError(t, err)
	assert.Contains(t, result, "Successfully deleted")
	assert.NoFileExists(t, path)
}

func TestDeleteRefusesDirectory(t *testing.T) {
	guard := newGuard(t)
	del := NewDeleteTool(guard)

	require.NoError(t, os.MkdirAll(filepath.Join(guard.Root(), "keep"), 0755))

	_, err := del.Execute(context.Background(), `{"path": "keep"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func marshalArgs(m map[string]string) (string, error) {
	raw, err := json.Marshal(m)
	return string(raw), err
}
