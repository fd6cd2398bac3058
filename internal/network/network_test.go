package network

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/0nch41n/neuroprint/internal/constants"
	"github.com/0nch41n/neuroprint/internal/fixedpoint"
	"github.com/0nch41n/neuroprint/internal/models"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		inputs  int
		outputs int
	}{
		{"zero inputs", 0, 2},
		{"zero outputs", 2, 0},
		{"negative inputs", -1, 2},
		{"over cap", 100, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("bad", tt.inputs, tt.outputs)
			if !errors.Is(err, models.ErrInvalidTopology) {
				t.Errorf("New(%d, %d): got %v, want ErrInvalidTopology", tt.inputs, tt.outputs, err)
			}
		})
	}
}

func TestNew_Layout(t *testing.T) {
	n, err := New("test", 4, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(n.Neurons) != 6 || n.LayerCount != 2 {
		t.Fatalf("got %d neurons in %d layers, want 6 in 2", len(n.Neurons), n.LayerCount)
	}
	for i := 0; i < 4; i++ {
		nr := n.Neurons[i]
		if nr.Type != models.NeuronInput || nr.Layer != 0 || nr.RefractoryPeriod != 0 {
			t.Errorf("neuron %d = %+v, want input layer 0 with no refractory period", i, nr)
		}
		if !nr.Threshold.Equal(fixedpoint.One()) {
			t.Errorf("neuron %d threshold = %s, want 1", i, nr.Threshold)
		}
	}
	for i := 4; i < 6; i++ {
		nr := n.Neurons[i]
		if nr.Type != models.NeuronExcitatory || nr.Layer != 1 {
			t.Errorf("neuron %d = %+v, want excitatory layer 1", i, nr)
		}
		if nr.RefractoryPeriod != constants.DefaultRefractoryPeriod {
			t.Errorf("neuron %d refractory period = %d, want %d",
				i, nr.RefractoryPeriod, constants.DefaultRefractoryPeriod)
		}
	}
}

func TestAddHiddenLayer(t *testing.T) {
	n := mustNew(t, 4, 2)
	rng := rand.New(rand.NewSource(7))

	if err := n.AddHiddenLayer(8, 1, rng); err != nil {
		t.Fatalf("AddHiddenLayer: %v", err)
	}
	if n.LayerCount != 3 {
		t.Errorf("LayerCount = %d, want 3", n.LayerCount)
	}
	// Outputs shifted up, hidden neurons appended at layer 1.
	for i := 4; i < 6; i++ {
		if n.Neurons[i].Layer != 2 {
			t.Errorf("output neuron %d layer = %d, want 2", i, n.Neurons[i].Layer)
		}
	}
	for i := 6; i < 14; i++ {
		nr := n.Neurons[i]
		if nr.Layer != 1 {
			t.Errorf("hidden neuron %d layer = %d, want 1", i, nr.Layer)
		}
		if nr.Type != models.NeuronExcitatory && nr.Type != models.NeuronInhibitory {
			t.Errorf("hidden neuron %d type = %q", i, nr.Type)
		}
	}
	if len(n.Synapses) != 14 || len(n.NeuronSpikes) != 14 {
		t.Errorf("side tables not grown: %d synapse rows, %d spike rows",
			len(n.Synapses), len(n.NeuronSpikes))
	}
}

func TestAddHiddenLayer_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		name     string
		count    int
		position int
	}{
		{"zero count", 0, 1},
		{"position at input layer", 4, 0},
		{"position past last layer", 4, 2},
		{"over neuron cap", 125, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNew(t, 4, 2)
			err := n.AddHiddenLayer(tt.count, tt.position, rng)
			if !errors.Is(err, models.ErrInvalidTopology) {
				t.Errorf("AddHiddenLayer(%d, %d): got %v, want ErrInvalidTopology",
					tt.count, tt.position, err)
			}
		})
	}
}

func TestCreateSynapse(t *testing.T) {
	n := mustNew(t, 2, 1)
	if err := n.CreateSynapse(0, 2, fixedpoint.One()); err != nil {
		t.Fatalf("CreateSynapse: %v", err)
	}
	syns := n.Synapses[0]
	if len(syns) != 1 || syns[0].Target != 2 || !syns[0].Weight.Equal(fixedpoint.One()) {
		t.Errorf("synapse = %+v, want target 2 weight 1", syns)
	}
}

func TestCreateSynapse_Validation(t *testing.T) {
	half := mustParse(t, "0.5")
	tests := []struct {
		name    string
		source  int
		target  int
		weight  fixedpoint.Value
		wantErr error
	}{
		{"source out of range", -1, 2, half, models.ErrInvalidNeuron},
		{"target out of range", 0, 9, half, models.ErrInvalidNeuron},
		{"weight over cap", 0, 2, fixedpoint.FromInt(1001), models.ErrWeightOutOfRange},
		{"weight under cap", 0, 2, fixedpoint.FromInt(-1001), models.ErrWeightOutOfRange},
		{"same layer", 0, 1, half, models.ErrInvalidTopology},
		{"backward", 2, 0, half, models.ErrInvalidTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNew(t, 2, 1)
			err := n.CreateSynapse(tt.source, tt.target, tt.weight)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateSynapse(%d, %d, %s): got %v, want %v",
					tt.source, tt.target, tt.weight, err, tt.wantErr)
			}
		})
	}
}

func TestCreateSynapse_WeightAtBound(t *testing.T) {
	n := mustNew(t, 2, 1)
	if err := n.CreateSynapse(0, 2, fixedpoint.FromInt(1000)); err != nil {
		t.Errorf("weight exactly 1000 rejected: %v", err)
	}
	if err := n.CreateSynapse(1, 2, fixedpoint.FromInt(-1000)); err != nil {
		t.Errorf("weight exactly -1000 rejected: %v", err)
	}
}

func TestCreateSynapse_FanOutCap(t *testing.T) {
	n := mustNew(t, 1, constants.MaxFanOut+1)
	for i := 0; i < constants.MaxFanOut; i++ {
		if err := n.CreateSynapse(0, 1+i, fixedpoint.One()); err != nil {
			t.Fatalf("synapse %d: %v", i, err)
		}
	}
	err := n.CreateSynapse(0, 1+constants.MaxFanOut, fixedpoint.One())
	if !errors.Is(err, models.ErrInvalidTopology) {
		t.Errorf("synapse past fan-out cap: got %v, want ErrInvalidTopology", err)
	}
}

func TestCreateSynapse_InhibitorySign(t *testing.T) {
	n := mustNew(t, 2, 1)
	n.Neurons[0].Type = models.NeuronInhibitory

	if err := n.CreateSynapse(0, 2, mustParse(t, "0.5")); err != nil {
		t.Fatalf("CreateSynapse: %v", err)
	}
	if got := n.Synapses[0][0].Weight; got.Sign() > 0 {
		t.Errorf("inhibitory synapse weight = %s, want non-positive", got)
	}
	if want := mustParse(t, "-0.5"); !n.Synapses[0][0].Weight.Equal(want) {
		t.Errorf("inhibitory synapse weight = %s, want -0.5", n.Synapses[0][0].Weight)
	}
}

func TestSetInputs(t *testing.T) {
	n := mustNew(t, 3, 1)
	err := n.SetInputs([]fixedpoint.Value{fixedpoint.One(), mustParse(t, "0.5"), fixedpoint.Zero()})
	if err != nil {
		t.Fatalf("SetInputs: %v", err)
	}
	if !n.Neurons[0].HasFired {
		t.Error("neuron 0 at threshold should be flagged to fire")
	}
	if n.Neurons[1].HasFired || n.Neurons[2].HasFired {
		t.Error("sub-threshold neurons must not be flagged")
	}
	if !n.Neurons[1].MembranePotential.Equal(mustParse(t, "0.5")) {
		t.Errorf("neuron 1 potential = %s, want 0.5", n.Neurons[1].MembranePotential)
	}
}

func TestSetInputs_SizeMismatch(t *testing.T) {
	n := mustNew(t, 3, 1)
	err := n.SetInputs([]fixedpoint.Value{fixedpoint.One()})
	if !errors.Is(err, models.ErrInputSizeMismatch) {
		t.Errorf("got %v, want ErrInputSizeMismatch", err)
	}
}

func TestRecentSpikes(t *testing.T) {
	n := mustNew(t, 2, 1)
	n.SpikeLog = []models.Spike{
		{NeuronID: 0, TimeStep: 1},
		{NeuronID: 1, TimeStep: 2},
		{NeuronID: 2, TimeStep: 3},
	}

	got := n.RecentSpikes(2)
	if len(got) != 2 || got[0].TimeStep != 2 || got[1].TimeStep != 3 {
		t.Errorf("RecentSpikes(2) = %+v, want last two in order", got)
	}
	if got := n.RecentSpikes(10); len(got) != 3 {
		t.Errorf("RecentSpikes(10) = %d spikes, want all 3", len(got))
	}
	if got := n.RecentSpikes(0); got != nil {
		t.Errorf("RecentSpikes(0) = %+v, want nil", got)
	}
}

func TestSpikesSince(t *testing.T) {
	n := mustNew(t, 2, 1)
	n.SpikeLog = []models.Spike{
		{NeuronID: 0, TimeStep: 1},
		{NeuronID: 1, TimeStep: 5},
		{NeuronID: 2, TimeStep: 9},
	}
	got := n.SpikesSince(5)
	if len(got) != 2 || got[0].NeuronID != 1 {
		t.Errorf("SpikesSince(5) = %+v, want spikes at steps 5 and 9", got)
	}
}

func TestLastSpikeTime(t *testing.T) {
	n := mustNew(t, 2, 1)
	if _, ok := n.LastSpikeTime(0); ok {
		t.Error("fresh neuron should have no spike time")
	}
	n.NeuronSpikes[1] = []uint64{3, 8}
	ts, ok := n.LastSpikeTime(1)
	if !ok || ts != 8 {
		t.Errorf("LastSpikeTime(1) = %d, %v; want 8, true", ts, ok)
	}
	if _, ok := n.LastSpikeTime(99); ok {
		t.Error("out-of-range id should report no spike")
	}
}

func TestRandomWeight_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	one := fixedpoint.One()
	for i := 0; i < 1000; i++ {
		w := RandomWeight(rng)
		if w.Abs().Cmp(one) >= 0 {
			t.Fatalf("RandomWeight = %s outside (-1, 1)", w)
		}
	}
}

func mustNew(t *testing.T, inputs, outputs int) *Network {
	t.Helper()
	n, err := New("test", inputs, outputs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n
}

func mustParse(t *testing.T, s string) fixedpoint.Value {
	t.Helper()
	v, err := fixedpoint.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}
