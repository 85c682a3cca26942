package tusclient

// snapshotVersion is the schema tag written into every persisted snapshot.
const snapshotVersion = 1

// StateSnapshot is the persisted root: the engine's full durable state.
type StateSnapshot struct {
	Version int                     `json:"version"`
	Uploads map[string]UploadRecord `json:"uploads"`
	Config  TusConfig               `json:"config"`
}
