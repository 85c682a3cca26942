package tusclient

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/auriora/tusup/pkg/errors"
	"github.com/auriora/tusup/pkg/logging"
)

// activeHandle is the manager's bookkeeping for a currently-scheduled or
// running worker task.
type activeHandle struct {
	cancel context.CancelFunc
	sig    *cancelSignal
	done   chan struct{}
}

// UploadManager is the single owner of admission control and the registry
// of running workers, and the surface of the public lifecycle API.
type UploadManager struct {
	store  *Store
	client HTTPClient

	sem chan struct{}

	mu     sync.Mutex
	active map[string]*activeHandle

	rootCtx    context.Context
	rootCancel context.CancelFunc

	wg sync.WaitGroup
}

// NewManager opens the state store for config and returns a manager ready
// to accept add/start/pause/cancel calls. config must pass Validate.
func NewManager(config TusConfig) (*UploadManager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if lvl, err := logging.ParseLevel(config.LogLevel); err == nil {
		logging.SetDefault(logging.DefaultLogger.Level(lvl))
	}

	store, err := OpenStore(config)
	if err != nil {
		return nil, err
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	return &UploadManager{
		store:      store,
		client:     &http.Client{Timeout: config.RequestTimeout},
		sem:        make(chan struct{}, config.MaxConcurrent),
		active:     make(map[string]*activeHandle),
		rootCtx:    rootCtx,
		rootCancel: rootCancel,
	}, nil
}

// AddUpload stats filePath, creates a Pending record, and persists it.
func (m *UploadManager) AddUpload(filePath string, metadata map[string]string) (string, error) {
	config := m.store.Config()
	record, err := newUploadRecord(filePath, config.ChunkSize, metadata, time.Now())
	if err != nil {
		return "", err
	}
	if err := m.store.Add(record); err != nil {
		return "", err
	}
	logging.NewLogContext("upload").WithComponent("manager").WithUploadID(record.ID).WithPath(filePath).
		Logger().Info().Msg("upload added")
	return record.ID, nil
}

// StartUpload spawns a worker for id. Rejected with InvalidState if a
// worker is already running for id, or if the record is not startable.
func (m *UploadManager) StartUpload(id string) error {
	record, err := m.store.Get(id)
	if err != nil {
		return err
	}
	if !record.canStart() {
		return errors.NewInvalidStateError("upload " + id + " is not startable from state " + record.State.String())
	}

	m.mu.Lock()
	if _, exists := m.active[id]; exists {
		m.mu.Unlock()
		return errors.NewInvalidStateError("upload " + id + " already has a running worker")
	}

	select {
	case m.sem <- struct{}{}:
	default:
		m.mu.Unlock()
		return m.waitForPermitThenStart(id, record)
	}

	handle := m.spawn(id, record)
	m.active[id] = handle
	m.mu.Unlock()
	return nil
}

// waitForPermitThenStart blocks until a concurrency permit frees up, then
// starts the worker. Held outside the manager lock so running workers can
// still finish and release their permits.
func (m *UploadManager) waitForPermitThenStart(id string, record *UploadRecord) error {
	select {
	case m.sem <- struct{}{}:
	case <-m.rootCtx.Done():
		return errors.NewInvalidStateError("manager is shutting down")
	}

	m.mu.Lock()
	if _, exists := m.active[id]; exists {
		m.mu.Unlock()
		<-m.sem
		return errors.NewInvalidStateError("upload " + id + " already has a running worker")
	}
	handle := m.spawn(id, record)
	m.active[id] = handle
	m.mu.Unlock()
	return nil
}

// spawn starts the worker goroutine for record and returns its handle.
// Must be called with m.mu held.
func (m *UploadManager) spawn(id string, record *UploadRecord) *activeHandle {
	ctx, cancel := context.WithCancel(m.rootCtx)
	handle := &activeHandle{
		cancel: cancel,
		sig:    &cancelSignal{},
		done:   make(chan struct{}),
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(handle.done)
		defer func() { <-m.sem }()
		defer cancel()

		w := newWorker(m.store.Config(), m.client)
		final, _, _ := w.run(ctx, record, handle.sig)

		if err := m.store.Update(final); err != nil {
			logging.NewLogContext("upload").WithComponent("manager").WithUploadID(id).
				Logger().Error().Err(err).Msg("failed to persist worker result")
		}

		m.mu.Lock()
		delete(m.active, id)
		m.mu.Unlock()
	}()

	return handle
}

// PauseUpload asks the active worker for id to stop and land in Paused.
func (m *UploadManager) PauseUpload(id string) error {
	m.mu.Lock()
	handle, ok := m.active[id]
	m.mu.Unlock()
	if !ok {
		return errors.NewUploadNotFoundError(id)
	}

	handle.sig.set(reasonPause)
	handle.cancel()
	<-handle.done
	return nil
}

// CancelUpload asks the active worker for id to stop and land in
// Cancelled, or transitions a non-running Pending/Paused record directly.
func (m *UploadManager) CancelUpload(id string) error {
	m.mu.Lock()
	handle, ok := m.active[id]
	m.mu.Unlock()

	if ok {
		handle.sig.set(reasonCancel)
		handle.cancel()
		<-handle.done

		record, err := m.store.Get(id)
		if err != nil {
			return err
		}
		if !record.isFinished() {
			if err := record.transitionTo(Cancelled, time.Now()); err != nil {
				return err
			}
			return m.store.Update(record)
		}
		return nil
	}

	record, err := m.store.Get(id)
	if err != nil {
		return err
	}
	if record.isFinished() {
		return nil
	}
	if err := record.transitionTo(Cancelled, time.Now()); err != nil {
		return err
	}
	return m.store.Update(record)
}

// GetUploadStatus projects the current record for id into an UploadView.
func (m *UploadManager) GetUploadStatus(id string) (UploadView, error) {
	record, err := m.store.Get(id)
	if err != nil {
		return UploadView{}, err
	}
	return newUploadView(record), nil
}

// ListUploads projects every tracked record into an UploadView.
func (m *UploadManager) ListUploads() []UploadView {
	records := m.store.List()
	views := make([]UploadView, 0, len(records))
	for _, r := range records {
		views = append(views, newUploadView(r))
	}
	return views
}

// GetActiveCount reports how many workers are currently running or
// scheduled.
func (m *UploadManager) GetActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Shutdown cancels every running worker, waits for them to land, and
// persists the final state.
func (m *UploadManager) Shutdown() error {
	m.rootCancel()
	m.wg.Wait()
	return m.store.Save()
}
