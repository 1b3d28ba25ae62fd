package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordBatch forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordBatch(ev BatchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordBatch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordMerge forwards merge events to sinks that record them.
func (m *MultiSink) RecordMerge(ev MergeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(MergeRecorder); ok {
			if err := rec.RecordMerge(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordServe forwards serve events to sinks that record them.
func (m *MultiSink) RecordServe(ev ServeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ServeRecorder); ok {
			if err := rec.RecordServe(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSyncRatio forwards tunable changes to sinks that record them.
func (m *MultiSink) RecordSyncRatio(ratio int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RatioRecorder); ok {
			if err := rec.RecordSyncRatio(ratio); err != nil {
				return err
			}
		}
	}
	return nil
}
