package cmdutil

import "github.com/spf13/pflag"

// StressFlags defines the flags of the randomized stress run
func StressFlags(flags *pflag.FlagSet) {
	flags.Int("workers", 4, "number of independent trees driven in parallel")
	flags.Int("ops", 100_000, "operations per worker")
	flags.Int64("keyspace", 1<<16, "keys are drawn from [0, keyspace)")
	flags.Float64("erase-ratio", 0.4, "probability of an erase instead of an insert")
	flags.Int("verify-every", 1000, "verify the invariants every N operations, 0 verifies only at the end")
	flags.Int64("seed", 0, "random seed, 0 picks one from the clock")
	flags.String("metrics-bind", "", "serve prometheus metrics on this address, e.g. :9090")
	flags.Bool("progress", true, "show a progress bar")
}
