// Package similarity scores pairs of neural encodings. The score blends
// activated-neuron overlap with the distance between concept-activation
// vectors into a bounded integer in [0, 100]. The comparison is
// structural — shared activation patterns — not natural-language
// understanding.
package similarity

import (
	"fmt"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
)

// Score compares two encodings. Both must carry concept vectors of the
// same length. The result is symmetric, and an encoding with at least one
// activated neuron scores 100 against itself.
func Score(a, b *models.NeuralEncoding) (int, error) {
	if len(a.ConceptActivations) != len(b.ConceptActivations) {
		return 0, fmt.Errorf("%w: concept vectors have lengths %d and %d",
			models.ErrInputSizeMismatch, len(a.ConceptActivations), len(b.ConceptActivations))
	}
	neuron := neuronSimilarity(a.ActivatedNeurons, b.ActivatedNeurons)
	concept := conceptSimilarity(a.ConceptActivations, b.ConceptActivations)
	return (concept*constants.ConceptSimilarityWeight + neuron*constants.NeuronSimilarityWeight) / 100, nil
}

// neuronSimilarity is overlap*100 / avg(|setA|, |setB|), or 0 when both
// sets are empty.
func neuronSimilarity(setA, setB []int) int {
	avg := (len(setA) + len(setB)) / 2
	if avg == 0 {
		return 0
	}
	inA := make(map[int]bool, len(setA))
	for _, id := range setA {
		inA[id] = true
	}
	overlap := 0
	for _, id := range setB {
		if inA[id] {
			overlap++
		}
	}
	return overlap * 100 / avg
}

// conceptSimilarity is 100 minus the average absolute activation
// difference expressed as a percentage of 1.0, clamped to 0 when the
// average difference exceeds one full unit. Empty vectors agree
// perfectly.
func conceptSimilarity(a, b []fixedpoint.Value) int {
	if len(a) == 0 {
		return 100
	}
	sum := fixedpoint.Zero()
	for i := range a {
		sum = sum.Add(a[i].Sub(b[i]).Abs())
	}
	avg, err := sum.DivInt(int64(len(a)))
	if err != nil {
		panic(err)
	}
	diff := int(avg.Percent())
	if diff >= 100 {
		return 0
	}
	return 100 - diff
}
