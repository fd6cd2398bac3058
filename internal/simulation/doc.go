// Package simulation provides a multi-memory test harness for validating
// emergent dynamics of the spiking engine.
//
// The simulation exercises the real Engine, Network, and STDP rules — no
// mocks. Scenarios are Go builders that construct wired networks and
// process sequences of memories, capturing synapse weight snapshots after
// each memory for property-based assertions.
//
// Usage:
//
//	func TestPathwayStrengthens(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:     "pathway-strengthens",
//	        Inputs:   1,
//	        Outputs:  1,
//	        Synapses: []simulation.SynapseSpec{{Source: 0, Target: 1, Weight: "1"}},
//	        Memories: []string{"~", "~", "~"},
//	        Learning: true,
//	    })
//	    simulation.AssertWeightIncreased(t, result, 0, 1, 0, 2)
//	}
package simulation
