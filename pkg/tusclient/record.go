package tusclient

import (
	"os"
	"path/filepath"
	"time"

	"github.com/auriora/tusup/pkg/errors"
)

// UploadRecord describes one file job tracked by the engine.
type UploadRecord struct {
	ID         string            `json:"id"`
	FilePath   string            `json:"file_path"`
	Filename   string            `json:"filename"`
	TotalBytes int64             `json:"total_bytes"`
	ChunkSize  int64             `json:"chunk_size"`
	State      State             `json:"state"`
	Location   string            `json:"location,omitempty"`
	Progress   Progress          `json:"progress"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// newUploadRecord stats filePath and builds a fresh Pending record. Fails
// with a Config error if the file cannot be stat'd or its name is empty.
func newUploadRecord(filePath string, chunkSize int64, metadata map[string]string, now time.Time) (*UploadRecord, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, errors.NewConfigError("cannot stat upload source "+filePath, err)
	}
	if info.IsDir() {
		return nil, errors.NewConfigError("upload source is a directory: "+filePath, nil)
	}

	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, errors.NewConfigError("upload source has no usable filename: "+filePath, nil)
	}

	return &UploadRecord{
		ID:         newID(),
		FilePath:   filePath,
		Filename:   filename,
		TotalBytes: info.Size(),
		ChunkSize:  chunkSize,
		State:      Pending,
		Progress:   newProgress(info.Size(), chunkSize),
		Metadata:   metadata,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// clone returns a deep-enough copy safe to hand to a worker or a caller
// without aliasing the store's internal Metadata map.
func (r *UploadRecord) clone() *UploadRecord {
	cp := *r
	if r.Metadata != nil {
		cp.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}

// transitionTo is the only sanctioned way to change State. It fails with
// InvalidState on any move not present in the transition table.
func (r *UploadRecord) transitionTo(target State, now time.Time) error {
	if !canTransition(r.State, target) {
		return errors.NewInvalidStateError("cannot transition upload " + r.ID + " from " + r.State.String() + " to " + target.String())
	}
	r.State = target
	r.UpdatedAt = now
	return nil
}

// canStart reports whether the record is eligible for a worker to pick up.
func (r *UploadRecord) canStart() bool {
	return r.State == Pending || r.State == Paused
}

// isActive reports whether a worker currently owns this record.
func (r *UploadRecord) isActive() bool {
	return r.State == Active
}

// isFinished reports whether the record has reached a terminal state.
func (r *UploadRecord) isFinished() bool {
	return isTerminal(r.State)
}
