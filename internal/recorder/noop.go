package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPackage(_ *PackageEvent) error       { return nil }
func (n *NoopRecorder) RecordAllocation(_ *AllocationEvent) error { return nil }
func (n *NoopRecorder) RecordTopUp(_ *TopUpEvent) error           { return nil }
func (n *NoopRecorder) Close() error                              { return nil }
