package lab

import (
	"math/rand"

	"github.com/aldermoss/genlab/method"
	"github.com/aldermoss/genlab/method/darwin"
)

// buildRegistry constructs the method registry. It is rebuilt fresh inside
// every Start call and discarded at Complete (spec §9 "global state" note:
// the registry is lazy, per-run, never a package-level singleton). The
// method-name set itself is constant, so the same function also backs
// ConfigureAlgo's/ApplyMap's pre-Start name validation via a throwaway
// instance.
func buildRegistry() *method.Registry {
	r := method.NewRegistry()
	r.Register("Darwin", func(rng *rand.Rand) method.Method { return darwin.New(rng) })
	r.Register("RandomOpti", method.NewRandomOpti)
	return r
}
