package tusclient

// UploadView projects an UploadRecord down to what a caller polling status
// needs, hiding internal bookkeeping like Location and Metadata.
type UploadView struct {
	ID               string  `json:"id"`
	State            string  `json:"state"`
	Progress         float64 `json:"progress"`
	Speed            float64 `json:"speed"`
	Filename         string  `json:"filename"`
	TotalBytes       int64   `json:"total_bytes"`
	BytesTransferred int64   `json:"bytes_transferred"`
}

func newUploadView(r *UploadRecord) UploadView {
	return UploadView{
		ID:               r.ID,
		State:            r.State.String(),
		Progress:         r.Progress.percentage(),
		Speed:            r.Progress.Speed,
		Filename:         r.Filename,
		TotalBytes:       r.TotalBytes,
		BytesTransferred: r.Progress.BytesTransferred,
	}
}
