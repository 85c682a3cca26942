package tusclient

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/auriora/tusup/pkg/logging"
	"github.com/auriora/tusup/pkg/retry"
)

// outcome classifies how a worker's run ended.
type outcome int

const (
	outcomeCompleted outcome = iota
	outcomePaused
	outcomeCancelled
	outcomeFailed
)

// worker drives one UploadRecord from Pending/Paused to a terminal state.
// A worker is single-shot: once run returns, a fresh worker is created to
// retry the same record.
type worker struct {
	config TusConfig
	client HTTPClient
}

func newWorker(config TusConfig, client HTTPClient) *worker {
	return &worker{config: config, client: client}
}

// logger returns a Logger carrying the fields every log line for this
// record's transfer should have attached.
func (w *worker) logger(record *UploadRecord) logging.Logger {
	return logging.NewLogContext("upload").WithComponent("worker").WithUploadID(record.ID).Logger()
}

// run takes ownership of record (already cloned by the caller) and drives
// it to a terminal state, or to Paused if sig reports a pause. It never
// mutates the record the manager still holds a reference to.
func (w *worker) run(ctx context.Context, record *UploadRecord, sig *cancelSignal) (*UploadRecord, outcome, error) {
	if !record.canStart() {
		return record, outcomeFailed, errors.NewInvalidStateError("upload " + record.ID + " is not startable from state " + record.State.String())
	}

	now := time.Now()
	if err := record.transitionTo(Active, now); err != nil {
		return record, outcomeFailed, err
	}

	if record.Location == "" {
		if err := w.createUpload(ctx, record); err != nil {
			record.Progress.LastError = err.Error()
			_ = record.transitionTo(Failed, time.Now())
			return record, outcomeFailed, err
		}
	}

	return w.transferLoop(ctx, record, sig)
}

// createUpload issues the tus Creation POST and stores the resulting
// Location on the record.
func (w *worker) createUpload(ctx context.Context, record *UploadRecord) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.Endpoint, nil)
	if err != nil {
		return errors.NewConfigError("cannot build creation request", err)
	}
	w.applyCommonHeaders(req)
	req.Header.Set(headerUploadLength, itoa64(record.TotalBytes))
	if meta := encodeMetadata(record.Metadata); meta != "" {
		req.Header.Set(headerUploadMeta, meta)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.NewNetworkError("creation request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewProtocolError("creation request rejected", resp.StatusCode, nil)
	}

	location := resp.Header.Get(headerLocation)
	if location == "" {
		return errors.NewConfigError("creation response missing Location header", nil)
	}
	resolved, err := w.resolveLocation(location)
	if err != nil {
		return err
	}

	record.Location = resolved
	record.UpdatedAt = time.Now()

	w.logger(record).Info().Str(logging.FieldURL, location).Msg("upload resource created")
	return nil
}

// transferLoop repeatedly discovers the server offset and PATCHes the next
// chunk until the upload completes, is paused, is cancelled, or exhausts its
// retry budget. Each step — a HEAD to confirm the offset, then a PATCH of
// the chunk at that offset — retries as one unit through retry.Do, because a
// retry must re-confirm the server's offset before resending a chunk: if the
// prior PATCH's 2xx acknowledgement was lost after the server had already
// committed the bytes, resending blind would duplicate them.
func (w *worker) transferLoop(ctx context.Context, record *UploadRecord, sig *cancelSignal) (*UploadRecord, outcome, error) {
	file, err := os.Open(record.FilePath)
	if err != nil {
		wrapped := errors.NewIOError("cannot open upload source", err)
		record.Progress.LastError = wrapped.Error()
		_ = record.transitionTo(Failed, time.Now())
		return record, outcomeFailed, wrapped
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, int(w.config.BufferSize))
	buf := make([]byte, record.ChunkSize)
	retryCfg := retry.DeterministicConfig(w.config.MaxRetries, w.config.RetryDelay, 30*time.Second)
	log := w.logger(record)

	for {
		if ctx.Err() != nil {
			return w.landOnCancellation(record, sig)
		}

		var completed bool
		stepErr := retry.Do(ctx, func() error {
			offset, err := w.queryOffset(ctx, record.Location)
			if err != nil {
				return err
			}
			record.Progress.syncOffset(offset, time.Now())

			if offset >= record.TotalBytes {
				completed = true
				return nil
			}

			if _, err := file.Seek(offset, io.SeekStart); err != nil {
				return errors.NewIOError("cannot seek upload source", err)
			}
			reader.Reset(file)

			n, err := io.ReadFull(reader, buf)
			if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
				return errors.NewIOError("cannot read upload source", err)
			}
			if n == 0 {
				completed = true
				return nil
			}

			start := time.Now()
			if err := w.patchChunk(ctx, record.Location, offset, buf[:n]); err != nil {
				return err
			}

			record.Progress.recordChunk(int64(n), time.Since(start), time.Now())
			record.UpdatedAt = time.Now()
			log.Debug().Int64(logging.FieldOffset, offset+int64(n)).Msg("chunk transferred")
			return nil
		}, retryCfg)

		if stepErr != nil {
			if ctx.Err() != nil {
				return w.landOnCancellation(record, sig)
			}
			record.Progress.LastError = stepErr.Error()
			_ = record.transitionTo(Failed, time.Now())
			log.Error().Err(stepErr).Msg("upload failed: retries exhausted")
			return record, outcomeFailed, stepErr
		}

		if completed {
			_ = record.transitionTo(Completed, time.Now())
			log.Info().Msg("upload completed")
			return record, outcomeCompleted, nil
		}
	}
}

// landOnCancellation finalizes a record once its context has fired,
// choosing Paused or Cancelled per the reason the manager recorded.
func (w *worker) landOnCancellation(record *UploadRecord, sig *cancelSignal) (*UploadRecord, outcome, error) {
	now := time.Now()
	log := w.logger(record)
	if sig != nil && sig.get() == reasonCancel {
		_ = record.transitionTo(Cancelled, now)
		log.Info().Msg("upload cancelled")
		return record, outcomeCancelled, nil
	}
	_ = record.transitionTo(Paused, now)
	log.Info().Msg("upload paused")
	return record, outcomePaused, nil
}

// queryOffset issues the tus offset-discovery HEAD request.
func (w *worker) queryOffset(ctx context.Context, location string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, location, nil)
	if err != nil {
		return 0, errors.NewConfigError("cannot build offset request", err)
	}
	w.applyCommonHeaders(req)

	resp, err := w.client.Do(req)
	if err != nil {
		return 0, errors.NewNetworkError("offset request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, errors.NewProtocolError("offset request rejected", resp.StatusCode, nil)
	}

	offset, ok := parseUploadOffset(resp.Header.Get(headerUploadOffset))
	if !ok {
		return 0, errors.NewProtocolError("offset response missing or malformed Upload-Offset", resp.StatusCode, nil)
	}
	return offset, nil
}

// patchChunk issues one tus PATCH carrying exactly the bytes in chunk at offset.
func (w *worker) patchChunk(ctx context.Context, location string, offset int64, chunk []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, location, newByteReader(chunk))
	if err != nil {
		return errors.NewConfigError("cannot build patch request", err)
	}
	w.applyCommonHeaders(req)
	req.Header.Set(headerUploadOffset, itoa64(offset))
	req.Header.Set(headerContentType, contentTypeOffsetOctetStream)
	req.ContentLength = int64(len(chunk))

	resp, err := w.client.Do(req)
	if err != nil {
		return errors.NewNetworkError("patch request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewProtocolError("patch request rejected", resp.StatusCode, nil)
	}
	return nil
}

// resolveLocation resolves a possibly-relative Location header value
// against the configured endpoint, per the tus Creation extension's
// "absolute or relative resource URL" allowance.
func (w *worker) resolveLocation(location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", errors.NewProtocolError("creation response Location header is not a valid URL", 0, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(w.config.Endpoint)
	if err != nil {
		return "", errors.NewConfigError("endpoint is not a valid URL", err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (w *worker) applyCommonHeaders(req *http.Request) {
	req.Header.Set(headerTusResumable, tusVersion)
	for k, v := range w.config.Headers {
		req.Header.Set(k, v)
	}
}
