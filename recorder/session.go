package recorder

// CaptureDevice abstracts the platform audio input. Acquire opens the input
// stream, Finalize encodes everything captured so far into a single blob,
// Release frees the stream. Implementations should wrap the sentinel errors
// in errors.go so Acquire failures classify correctly.
type CaptureDevice interface {
	Acquire() error
	Finalize() ([]byte, error)
	Release()
}

// Session drives the state machine against a real capture device. Only one
// active capture session exists at a time; the caller pumps Tick once per
// second while recording.
type Session struct {
	snap     Snapshot
	device   CaptureDevice
	artifact []byte
}

// NewSession creates an idle session over the given device.
func NewSession(device CaptureDevice) *Session {
	return &Session{device: device}
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot { return s.snap }

// Artifact returns the finalized recording, or nil if none is held.
func (s *Session) Artifact() []byte { return s.artifact }

// Start begins a new capture. A no-op unless the session is idle with no
// pending artifact.
func (s *Session) Start() {
	next, effects := Transition(s.snap, StartRequested{})
	s.snap = next
	s.apply(effects)
}

// Tick advances the elapsed-seconds counter. Driven by the caller's timer.
func (s *Session) Tick() {
	s.snap, _ = Transition(s.snap, Tick{})
}

// Stop finalizes the capture into an artifact. A no-op unless recording.
func (s *Session) Stop() {
	next, effects := Transition(s.snap, StopRequested{})
	s.snap = next
	s.apply(effects)
}

// Clear discards a finished recording. A no-op unless idle with an artifact.
func (s *Session) Clear() {
	next, effects := Transition(s.snap, ClearRequested{})
	s.snap = next
	s.apply(effects)
}

func (s *Session) apply(effects []Effect) {
	for _, effect := range effects {
		switch effect {
		case EffectAcquireStream:
			if err := s.device.Acquire(); err != nil {
				s.dispatch(CaptureFailed{Kind: Classify(err)})
				continue
			}
			s.dispatch(CaptureStarted{})

		case EffectFinalizeCapture:
			data, err := s.device.Finalize()
			if err != nil {
				s.dispatch(FinalizeFailed{})
				continue
			}
			s.artifact = data
			s.dispatch(ArtifactReady{})

		case EffectReleaseStream:
			s.device.Release()

		case EffectDiscardArtifact:
			s.artifact = nil

		case EffectStartTicker, EffectStopTicker:
			// Timer ownership lives with the caller; Tick is pumped in.
		}
	}
}

func (s *Session) dispatch(ev Event) {
	next, effects := Transition(s.snap, ev)
	s.snap = next
	s.apply(effects)
}
