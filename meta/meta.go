// meta/meta.go
package meta

// ITERATIONS defines the default number of simulated games.
const ITERATIONS = 1000

// WORKERS defines the default number of games simulated concurrently.
const WORKERS = 1

// SEED defines the default simulation seed. Zero seeds from the clock.
const SEED = 0

// OUTPUT_DIR defines where CSV results are written when no directory is given.
const OUTPUT_DIR = "results"

// CRITERION defines the default ranking criterion of the results table.
const CRITERION = "wins"
