package metrics

import "github.com/teeterq/teeter/core/factory"

var sinkRegistry = factory.NewRegistry[Sink]()

// RegisterSink adds a metrics sink builder identified by name.
func RegisterSink(name string, b factory.Builder[Sink]) error {
	return sinkRegistry.Register(name, b)
}

// NewSink creates a Sink from the provided configuration. With no sinks
// configured a NopSink is returned; with several, a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Build(cfgs[0])
	}
	sinks := make([]Sink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Build(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
