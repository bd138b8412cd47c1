// Package report provides read-only capacity diagnostics over pad state.
package report

import (
	"fmt"

	"github.com/otpvault/libotp-go/pad"
)

// DefaultAssumedMessageLength is the assumed average message length in
// bytes used to derive message capacity when none is configured.
const DefaultAssumedMessageLength = 256

// Reporter computes remaining-capacity statistics. It carries no
// correctness contract, only an observability one: the numbers warn
// operators of impending pad exhaustion before it becomes a hard
// failure.
type Reporter struct {
	// AssumedMessageLength is the heuristic average message size in
	// bytes. Zero or negative falls back to
	// DefaultAssumedMessageLength.
	AssumedMessageLength int

	// LowWaterMark is the message-capacity threshold below which
	// Summary.Low reports true. Zero falls back to 10.
	LowWaterMark float64
}

// Summary describes a pad's remaining capacity at one point in time.
// It must be taken post-commit so the numbers reflect the state after
// the operation, not before it.
type Summary struct {
	RemainingBytes         int
	TotalLength            int
	ConsumedBytes          int
	AverageMessageCapacity float64

	lowWaterMark float64
}

// Summarize computes a capacity summary for the pad.
func (r Reporter) Summarize(p *pad.Pad) Summary {
	assumed := r.AssumedMessageLength
	if assumed <= 0 {
		assumed = DefaultAssumedMessageLength
	}
	low := r.LowWaterMark
	if low <= 0 {
		low = 10
	}
	return Summary{
		RemainingBytes:         p.Remaining(),
		TotalLength:            p.TotalLength(),
		ConsumedBytes:          p.Offset(),
		AverageMessageCapacity: float64(p.Remaining()) / float64(assumed),
		lowWaterMark:           low,
	}
}

// Low reports whether the pad is close to exhaustion under the
// reporter's threshold.
func (s Summary) Low() bool {
	return s.AverageMessageCapacity < s.lowWaterMark
}

// String renders the summary for console display.
func (s Summary) String() string {
	return fmt.Sprintf("%d of %d pad bytes remaining (~%.1f average-size messages)",
		s.RemainingBytes, s.TotalLength, s.AverageMessageCapacity)
}
