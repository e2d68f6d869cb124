package cache

// SnapshotData attempts to convert a snapshot's payload to the specified
// type. Returns the typed value and true if successful, nil and false
// otherwise (including for idle or error-only entries with no data).
func SnapshotData[T any](e Entry) (*T, bool) {
	if e.Data == nil {
		return nil, false
	}
	if typed, ok := e.Data.(*T); ok {
		return typed, true
	}
	if typed, ok := e.Data.(T); ok {
		return &typed, true
	}
	return nil, false
}
