package tusclient

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestUT_RC_01_01_NewUploadRecord_PopulatesFieldsFromFile(t *testing.T) {
	path := writeTempFile(t, 10*1024*1024)
	now := time.Now()

	r, err := newUploadRecord(path, 1024*1024, map[string]string{"k": "v"}, now)
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, path, r.FilePath)
	assert.Equal(t, "payload.bin", r.Filename)
	assert.Equal(t, int64(10*1024*1024), r.TotalBytes)
	assert.Equal(t, Pending, r.State)
	assert.Equal(t, "v", r.Metadata["k"])
	assert.Equal(t, 10, r.Progress.TotalChunks)
	assert.Equal(t, now, r.CreatedAt)
}

func TestUT_RC_01_02_NewUploadRecord_MissingFile_FailsWithConfigError(t *testing.T) {
	_, err := newUploadRecord(filepath.Join(t.TempDir(), "missing.bin"), 1024, nil, time.Now())
	assert.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestUT_RC_01_03_NewUploadRecord_Directory_FailsWithConfigError(t *testing.T) {
	dir := t.TempDir()
	_, err := newUploadRecord(dir, 1024, nil, time.Now())
	assert.True(t, errors.IsConfigError(err))
}

func TestUT_RC_02_01_Clone_DoesNotAliasMetadata(t *testing.T) {
	r := &UploadRecord{ID: "1", Metadata: map[string]string{"a": "1"}}
	cp := r.clone()
	cp.Metadata["a"] = "2"
	assert.Equal(t, "1", r.Metadata["a"])
}

func TestUT_RC_03_01_TransitionTo_ForbiddenMove_LeavesStateUnchanged(t *testing.T) {
	r := &UploadRecord{ID: "1", State: Cancelled}
	err := r.transitionTo(Active, time.Now())
	assert.Error(t, err)
	assert.Equal(t, Cancelled, r.State)
}
