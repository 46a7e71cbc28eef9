package sentinel1decoder

import (
	"errors"
	"fmt"
)

// Errors returned by the decoder's exported entry points. Each is wrapped
// with packet/byte context in a packetError (which unwraps to the
// sentinel) before being returned, so callers can match with errors.Is
// against these sentinels.
var (
	// ErrTruncatedPayload is returned when a packet's payload ends before
	// the number of quads it claims requires.
	ErrTruncatedPayload = errors.New("sentinel1decoder: truncated payload")

	// ErrInvalidBRC is returned when a decoded Bit Rate Code falls outside
	// the valid 0..=4 range.
	ErrInvalidBRC = errors.New("sentinel1decoder: invalid BRC")

	// ErrMetadataMissing is returned when a FDBAQ block is needed before
	// its BRC (or THIDX) has been established, e.g. a THIDX-bearing
	// channel decoded ahead of the BRC-bearing one.
	ErrMetadataMissing = errors.New("sentinel1decoder: BRC/THIDX metadata missing for block")

	// ErrMalformedReconstruction is returned when a decoded symbol's
	// magnitude has no corresponding reconstruction table entry for its
	// BRC. Spec.md treats this as a "panic-class" failure (it can never
	// happen for a well-formed encoder), but it is surfaced here as an
	// ordinary error: it is triggered by caller-supplied bytes, not a
	// programming invariant, so Go idiom calls for an explicit error
	// return rather than a panic.
	ErrMalformedReconstruction = errors.New("sentinel1decoder: malformed reconstruction input")

	// ErrInvalidHeader is returned when a primary or secondary header
	// field combination cannot occur per the protocol (e.g. a reserved
	// SSB flag value).
	ErrInvalidHeader = errors.New("sentinel1decoder: invalid header field")
)

// packetError wraps a sentinel error with the packet index and, where
// relevant, byte offset and channel name that triggered it — following
// the teacher's errors.New + fmt.Errorf("...: %w", err) idiom, with the
// structured fields added so batch callers can report which packet in a
// run failed without parsing the error string.
type packetError struct {
	sentinel    error
	packetIndex int
	byteOffset  int
	channel     string
	detail      string
}

func (e *packetError) Error() string {
	msg := fmt.Sprintf("packet %d", e.packetIndex)
	if e.channel != "" {
		msg += fmt.Sprintf(" channel %s", e.channel)
	}
	if e.byteOffset >= 0 {
		msg += fmt.Sprintf(" offset %d", e.byteOffset)
	}
	if e.detail != "" {
		msg += ": " + e.detail
	}
	return fmt.Sprintf("%s: %s", msg, e.sentinel)
}

func (e *packetError) Unwrap() error {
	return e.sentinel
}

func wrapPacketErr(sentinel error, packetIndex int, channel string, byteOffset int, detail string) error {
	return &packetError{
		sentinel:    sentinel,
		packetIndex: packetIndex,
		byteOffset:  byteOffset,
		channel:     channel,
		detail:      detail,
	}
}
