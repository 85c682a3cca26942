package tusclient

import "time"

// Progress tracks how far an upload has gotten and how fast it is moving.
type Progress struct {
	BytesTransferred int64     `json:"bytes_transferred"`
	TotalBytes       int64     `json:"total_bytes"`
	ChunksCompleted  int       `json:"chunks_completed"`
	TotalChunks      int       `json:"total_chunks"`
	LastError        string    `json:"last_error,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
	// Speed is a smoothed transfer rate in bytes/second.
	Speed float64 `json:"speed"`
}

func newProgress(totalBytes int64, chunkSize int64) Progress {
	totalChunks := int((totalBytes + chunkSize - 1) / chunkSize)
	if totalBytes == 0 {
		totalChunks = 0
	}
	return Progress{
		TotalBytes:  totalBytes,
		TotalChunks: totalChunks,
	}
}

// syncOffset resets BytesTransferred to the server's authoritative offset.
// The worker calls this after every HEAD, since the server offset — not
// the client's tally of acknowledged PATCHes — is the source of truth for
// how much of the file has actually landed.
func (p *Progress) syncOffset(offset int64, now time.Time) {
	p.BytesTransferred = offset
	p.LastUpdated = now
}

// recordChunk folds in one successfully-acknowledged chunk of n bytes sent
// over duration d, advancing the smoothed speed estimate with an
// exponential moving average (0.7 weight on the prior estimate, 0.3 on the
// instantaneous rate for this chunk). The first call seeds the estimate
// directly from the instantaneous rate. It does not touch BytesTransferred;
// the next syncOffset call is what makes that authoritative.
func (p *Progress) recordChunk(n int64, d time.Duration, now time.Time) {
	p.ChunksCompleted++
	p.LastUpdated = now

	seconds := d.Seconds()
	if seconds <= 0 {
		return
	}
	instant := float64(n) / seconds
	if p.Speed == 0 {
		p.Speed = instant
	} else {
		p.Speed = p.Speed*0.7 + instant*0.3
	}
}

// percentage returns progress as a 0..1 fraction. A zero-length upload is
// reported complete.
func (p Progress) percentage() float64 {
	if p.TotalBytes <= 0 {
		return 1
	}
	return float64(p.BytesTransferred) / float64(p.TotalBytes)
}
