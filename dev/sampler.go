package dev

import "sync/atomic"

// SampleConfig describes one continuous conversion setup.
type SampleConfig struct {
	ResolutionBits uint8
	RightAlign     bool
	// Continuous restarts a conversion as soon as one finishes.
	Continuous bool
	// ContinuousRequests keeps the converter raising stream requests
	// after every conversion. Without it the stream silently stops
	// once the first pass completes.
	ContinuousRequests bool
}

// SampleStream is a peripheral-to-memory stream that deposits converter
// results into a ring without CPU involvement. A DMA channel on real
// hardware, a goroutine in the simulator.
type SampleStream interface {
	Disable() error
	ClearFlags()
	ClearHalfFlag()
	ClearCompleteFlag()
	Configure(dst []uint16) error
	EnableInterrupts(half, complete bool)
	Enable()
}

// SampleSource is the converter feeding the stream.
type SampleSource interface {
	Configure(cfg SampleConfig) error
	Start()
	Stop()
}

// Sampler keeps a circular current-sense ring filled in the background
// and latches a flag whenever a full lap of fresh samples is available.
type Sampler struct {
	stream SampleStream
	source SampleSource
	ring   []uint16
	ready  atomic.Uint32

	configured bool
}

func NewSampler(stream SampleStream, source SampleSource, ring []uint16) (*Sampler, error) {
	if stream == nil {
		return nil, ErrStreamRequired
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if len(ring) == 0 || len(ring)%2 != 0 {
		return nil, ErrRingSize
	}
	return &Sampler{stream: stream, source: source, ring: ring}, nil
}

// Configure arms the stream and starts continuous conversion. The order
// is load-bearing: the stream must be disabled and its flags cleared
// before it is re-armed, and it must be running before the source raises
// its first request.
func (s *Sampler) Configure() error {
	if err := s.stream.Disable(); err != nil {
		return err
	}
	s.stream.ClearFlags()
	if err := s.stream.Configure(s.ring); err != nil {
		return err
	}
	s.stream.EnableInterrupts(true, true)
	s.stream.Enable()

	err := s.source.Configure(SampleConfig{
		ResolutionBits:     12,
		RightAlign:         true,
		Continuous:         true,
		ContinuousRequests: true,
	})
	if err != nil {
		return err
	}
	s.source.Start()
	s.configured = true
	return nil
}

// Stop halts conversion and the stream.
func (s *Sampler) Stop() error {
	s.source.Stop()
	s.configured = false
	return s.stream.Disable()
}

func (s *Sampler) Configured() bool { return s.configured }

// OnHalfTransfer runs in interrupt context when the ring is half full.
// Only the flag is cleared; the hook stays wired for double-buffered
// consumers.
func (s *Sampler) OnHalfTransfer() {
	s.stream.ClearHalfFlag()
}

// OnTransferComplete runs in interrupt context when the ring wraps and
// publishes a fresh batch.
func (s *Sampler) OnTransferComplete() {
	s.stream.ClearCompleteFlag()
	s.ready.Store(1)
}

// TakeBatch consumes the fresh-batch latch.
func (s *Sampler) TakeBatch() bool {
	return s.ready.Swap(0) == 1
}

// Ring exposes the sample ring. The stream keeps writing behind the
// reader's back; consumers average a whole lap so a tearing read moves
// the result by at most one sample.
func (s *Sampler) Ring() []uint16 { return s.ring }
