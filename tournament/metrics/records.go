package metrics

import (
	"connect4/tournament"
	"sync"
	"time"
)

type GameRecord struct {
	ID         int
	First      string // label of Player1
	Second     string // label of Player2
	Outcome    string // winning label or tournament.TieLabel
	Moves      int
	Timeouts   int
	Violations int
	Seed       uint64
	EndTime    time.Time
}

type MoveRecord struct {
	Game     int // GameRecord.ID
	Step     int
	Player   int
	Strategy string
	Column   int
	Status   string
	Elapsed  time.Duration
}

// Collector turns finished games into records. Its Record method is a
// tournament.Recorder.
type Collector struct {
	mu    sync.Mutex
	games []GameRecord
	moves []MoveRecord
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(g tournament.Game) {
	outcome := tournament.TieLabel
	if w := g.Result.Winner; w > 0 {
		outcome = g.Order[w-1]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.games = append(c.games, GameRecord{
		ID:         g.ID,
		First:      g.Order[0],
		Second:     g.Order[1],
		Outcome:    outcome,
		Moves:      g.Result.Moves,
		Timeouts:   g.Result.Timeouts[0] + g.Result.Timeouts[1],
		Violations: g.Result.Violations[0] + g.Result.Violations[1],
		Seed:       g.Seed,
		EndTime:    time.Now(),
	})
	for _, m := range g.Result.Records {
		c.moves = append(c.moves, MoveRecord{
			Game:     g.ID,
			Step:     m.Step,
			Player:   int(m.Player),
			Strategy: g.Order[int(m.Player)-1],
			Column:   m.Column,
			Status:   m.Status.String(),
			Elapsed:  m.Elapsed,
		})
	}
}

func (c *Collector) Games() []GameRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]GameRecord(nil), c.games...)
}

func (c *Collector) Moves() []MoveRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MoveRecord(nil), c.moves...)
}
