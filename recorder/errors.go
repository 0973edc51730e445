package recorder

import "errors"

// ErrorKind classifies a capture failure for user-facing messaging.
type ErrorKind int

const (
	KindCapture ErrorKind = iota
	KindPermission
	KindDeviceNotFound
	KindDeviceBusy
)

// Sentinel errors a CaptureDevice should wrap so failures classify cleanly.
var (
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrDeviceNotFound   = errors.New("no microphone device found")
	ErrDeviceBusy       = errors.New("microphone device busy")
)

// Classify maps a capture error onto an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return KindPermission
	case errors.Is(err, ErrDeviceNotFound):
		return KindDeviceNotFound
	case errors.Is(err, ErrDeviceBusy):
		return KindDeviceBusy
	default:
		return KindCapture
	}
}

// Message returns the fixed user-facing message for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case KindPermission:
		return "Microphone access denied. Please allow microphone access and try again."
	case KindDeviceNotFound:
		return "No microphone found. Please connect a microphone and try again."
	case KindDeviceBusy:
		return "Microphone is already in use by another application."
	default:
		return "Could not start recording. Please check your microphone and try again."
	}
}
