// Package recorder implements the client-side recording session as an
// explicit finite-state machine. The transition core is pure so the guards
// can be tested without a real timer or microphone; Session is the driver
// that owns a capture device and applies effects.
//
// A Session is owned by a single goroutine (the UI loop). It is not safe
// for concurrent use.
package recorder

// State of the recording session.
type State int

const (
	Idle State = iota
	Recording
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is the observable session state the UI renders from.
type Snapshot struct {
	State          State
	ElapsedSeconds int
	HasArtifact    bool
	LastError      string
}

// Event is a stimulus fed into Transition.
type Event interface{ isEvent() }

type (
	// StartRequested is the user pressing record.
	StartRequested struct{}
	// CaptureStarted fires once the input stream is acquired.
	CaptureStarted struct{}
	// CaptureFailed fires when stream acquisition fails.
	CaptureFailed struct{ Kind ErrorKind }
	// Tick fires once per second while recording.
	Tick struct{}
	// StopRequested is the user pressing stop.
	StopRequested struct{}
	// ArtifactReady fires once the capture is finalized into a blob.
	ArtifactReady struct{}
	// FinalizeFailed fires when the capture could not be finalized.
	FinalizeFailed struct{}
	// ClearRequested is the user discarding the finished recording.
	ClearRequested struct{}
)

func (StartRequested) isEvent() {}
func (CaptureStarted) isEvent() {}
func (CaptureFailed) isEvent()  {}
func (Tick) isEvent()           {}
func (StopRequested) isEvent()  {}
func (ArtifactReady) isEvent()  {}
func (FinalizeFailed) isEvent() {}
func (ClearRequested) isEvent() {}

// Effect is a side effect the driver must perform after a transition.
type Effect int

const (
	EffectAcquireStream Effect = iota
	EffectStartTicker
	EffectStopTicker
	EffectFinalizeCapture
	EffectReleaseStream
	EffectDiscardArtifact
)

// Transition is the pure state-machine core: given the current snapshot and
// an event it returns the next snapshot plus the effects to perform. Events
// that are invalid in the current state are no-ops, not errors: the snapshot
// is returned unchanged with no effects.
func Transition(s Snapshot, ev Event) (Snapshot, []Effect) {
	switch e := ev.(type) {
	case StartRequested:
		// Guarded no-op while already recording, stopping, or holding an
		// undiscarded artifact.
		if s.State != Idle || s.HasArtifact {
			return s, nil
		}
		return s, []Effect{EffectAcquireStream}

	case CaptureStarted:
		if s.State != Idle {
			return s, nil
		}
		s.State = Recording
		s.ElapsedSeconds = 0
		s.LastError = ""
		return s, []Effect{EffectStartTicker}

	case CaptureFailed:
		if s.State != Idle {
			return s, nil
		}
		s.LastError = e.Kind.Message()
		return s, nil

	case Tick:
		if s.State != Recording {
			return s, nil
		}
		s.ElapsedSeconds++
		return s, nil

	case StopRequested:
		if s.State != Recording {
			return s, nil
		}
		s.State = Stopped
		return s, []Effect{EffectStopTicker, EffectFinalizeCapture}

	case ArtifactReady:
		if s.State != Stopped {
			return s, nil
		}
		s.State = Idle
		s.HasArtifact = true
		return s, []Effect{EffectReleaseStream}

	case FinalizeFailed:
		if s.State != Stopped {
			return s, nil
		}
		s.State = Idle
		s.LastError = KindCapture.Message()
		return s, []Effect{EffectReleaseStream}

	case ClearRequested:
		if s.State != Idle || !s.HasArtifact {
			return s, nil
		}
		s.HasArtifact = false
		s.ElapsedSeconds = 0
		s.LastError = ""
		return s, []Effect{EffectDiscardArtifact}
	}
	return s, nil
}
