// Package encoding maps text onto network input vectors and derives the
// content fingerprint and neuroplasticity score of a processing run.
package encoding

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

// TextToInputs maps the leading bytes of text onto a fixed-point input
// vector of the given length. Each byte b becomes (b - 32) / 94 scaled,
// mapping printable ASCII 32..126 into [0, 1]. Positions beyond the text
// length, or beyond the 16-byte span, are zero.
func TextToInputs(text string, inputCount int) []fixedpoint.Value {
	inputs := make([]fixedpoint.Value, inputCount)
	span := len(text)
	if span > constants.TextInputSpan {
		span = constants.TextInputSpan
	}
	if span > inputCount {
		span = inputCount
	}
	for i := 0; i < span; i++ {
		v, err := fixedpoint.FromInt(int64(text[i]) - constants.PrintableBase).
			DivInt(constants.PrintableRange)
		if err != nil {
			// PrintableRange is a non-zero constant.
			panic(err)
		}
		inputs[i] = v
	}
	return inputs
}

// PlasticityScore derives the bounded [0, 100] neuroplasticity score
// from the number of distinct neurons activated during a run.
func PlasticityScore(activatedCount int) int {
	score := activatedCount * constants.NeuroplasticityPerNeuron
	if score > constants.MaxNeuroplasticity {
		return constants.MaxNeuroplasticity
	}
	return score
}

// Fingerprint computes the content-addressed, order-sensitive digest of a
// processing run: a hex-encoded SHA-256 over the text, the activated
// neuron sequence, the concept activations, and the processing time step.
// Because the time step is included, identical text processed later (or
// against different weights) yields a different fingerprint.
func Fingerprint(text string, activated []int, conceptActivations []fixedpoint.Value, timeStep uint64) string {
	h := sha256.New()
	h.Write([]byte(text))

	var buf [8]byte
	for _, id := range activated {
		binary.BigEndian.PutUint32(buf[:4], uint32(id))
		h.Write(buf[:4])
	}
	for _, act := range conceptActivations {
		// The raw scaled decimal is unambiguous; the separator keeps
		// adjacent values from colliding.
		h.Write([]byte(act.Raw().String()))
		h.Write([]byte{0})
	}
	binary.BigEndian.PutUint64(buf[:], timeStep)
	h.Write(buf[:])

	return hex.EncodeToString(h.Sum(nil))
}
