// meta/meta.go
package meta

import "time"

// Games defines the number of games in a tournament.
const Games = 1000

// MoveBudget defines the time a strategy has to choose a move.
const MoveBudget = time.Second

// MinimaxThink defines how long minimax deepens before answering.
const MinimaxThink = 500 * time.Millisecond

// MinimaxDepth defines the deepest minimax iteration.
const MinimaxDepth = 12

// MCTSGoroutines defines the number of goroutines to use.
const MCTSGoroutines = 4

// MCTSDuration defines the search time per move for MCTS.
const MCTSDuration = 500 * time.Millisecond

// OutputDir defines where tournament records are written.
const OutputDir = "results"

// EnvPrefix defines the prefix of configuration environment variables.
const EnvPrefix = "CONNECT4"
