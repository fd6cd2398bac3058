package network

import (
	"math/rand"

	"github.com/0nch41n/neuroprint/internal/fixedpoint"
)

// rawScale is the scale factor as a plain int64, used to draw uniformly
// scaled random values without floating point.
const rawScale = int64(1_000_000_000_000_000_000)

// RandomWeight draws a uniform initial synapse weight in (-1.0, 1.0)
// scaled, from the injected randomness source. Inhibitory sources still
// have the sign forced at synapse creation.
func RandomWeight(rng *rand.Rand) fixedpoint.Value {
	return fixedpoint.FromRawInt64(rng.Int63n(2*rawScale-1) - (rawScale - 1))
}
