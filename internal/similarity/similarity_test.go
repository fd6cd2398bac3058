package similarity

import (
	"errors"
	"testing"

	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
)

func enc(t *testing.T, neurons []int, acts ...string) *models.NeuralEncoding {
	t.Helper()
	vals := make([]fixedpoint.Value, len(acts))
	for i, s := range acts {
		v, err := fixedpoint.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		vals[i] = v
	}
	return &models.NeuralEncoding{ActivatedNeurons: neurons, ConceptActivations: vals}
}

func TestScore_Identical(t *testing.T) {
	a := enc(t, []int{1, 2, 3}, "0.5")
	got, err := Score(a, a)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 100 {
		t.Errorf("self score = %d, want 100", got)
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	a := enc(t, []int{1}, "0.5")
	b := enc(t, []int{1}, "0.5", "0.5")
	_, err := Score(a, b)
	if !errors.Is(err, models.ErrInputSizeMismatch) {
		t.Errorf("got %v, want ErrInputSizeMismatch", err)
	}
}

func TestScore_Symmetric(t *testing.T) {
	a := enc(t, []int{1, 2, 3, 4}, "0.5", "0.75")
	b := enc(t, []int{3, 4, 5, 6}, "0.25", "0.5")

	ab, err := Score(a, b)
	if err != nil {
		t.Fatalf("Score(a, b): %v", err)
	}
	ba, err := Score(b, a)
	if err != nil {
		t.Fatalf("Score(b, a): %v", err)
	}
	if ab != ba {
		t.Errorf("Score(a, b) = %d but Score(b, a) = %d", ab, ba)
	}
}

func TestScore_Blend(t *testing.T) {
	// Identical neuron sets, concept vectors 0.25 apart:
	// concept = 100 - 25 = 75, neuron = 100, score = (75*70 + 100*30)/100.
	a := enc(t, []int{1, 2}, "0.5")
	b := enc(t, []int{1, 2}, "0.25")
	got, err := Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 82 {
		t.Errorf("score = %d, want 82", got)
	}
}

func TestScore_PartialNeuronOverlap(t *testing.T) {
	// Overlap 2 with average set size 4: neuron = 50; concepts agree:
	// score = (100*70 + 50*30)/100 = 85.
	a := enc(t, []int{1, 2, 3, 4}, "0.5")
	b := enc(t, []int{3, 4, 5, 6}, "0.5")
	got, err := Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 85 {
		t.Errorf("score = %d, want 85", got)
	}
}

func TestScore_Disjoint(t *testing.T) {
	// Disjoint neuron sets and a concept distance past a full unit.
	a := enc(t, []int{1}, "0")
	b := enc(t, []int{2}, "1.5")
	got, err := Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestScore_EmptyEncodings(t *testing.T) {
	// No neurons, no concepts: concept side agrees perfectly, neuron
	// side contributes nothing.
	a := enc(t, nil)
	got, err := Score(a, enc(t, nil))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
}

func TestScore_Bounded(t *testing.T) {
	cases := []struct{ a, b *models.NeuralEncoding }{
		{enc(t, []int{1, 2, 3}, "1"), enc(t, []int{1, 2, 3}, "0")},
		{enc(t, []int{1}, "0.9"), enc(t, []int{1, 2, 3, 4, 5}, "0.1")},
		{enc(t, nil, "0.5"), enc(t, []int{7}, "0.5")},
	}
	for i, c := range cases {
		got, err := Score(c.a, c.b)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got < 0 || got > 100 {
			t.Errorf("case %d: score %d outside [0, 100]", i, got)
		}
	}
}
