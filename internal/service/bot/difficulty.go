package bot

import "time"

// Difficulty selects a search profile.
type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Medium Difficulty = "MEDIUM"
	Hard   Difficulty = "HARD"
)

type profile struct {
	maxDepth        int
	mistakeChance   float64
	mistakeTopN     int
	quiescenceDepth int           // extra plies when jumps remain at depth 0
	timeLimit       time.Duration // search wall-clock budget
	thinkDelay      time.Duration // artificial pause before acting
}

var profiles = map[Difficulty]profile{
	Easy:   {maxDepth: 2, mistakeChance: 0.25, mistakeTopN: 3, quiescenceDepth: 0, timeLimit: 150 * time.Millisecond, thinkDelay: 500 * time.Millisecond},
	Medium: {maxDepth: 4, mistakeChance: 0.10, mistakeTopN: 3, quiescenceDepth: 1, timeLimit: 300 * time.Millisecond, thinkDelay: 400 * time.Millisecond},
	Hard:   {maxDepth: 6, mistakeChance: 0, mistakeTopN: 1, quiescenceDepth: 2, timeLimit: 800 * time.Millisecond, thinkDelay: 300 * time.Millisecond},
}

// continuationThinkDelay is the shortened pause between hops of a chain.
const continuationThinkDelay = 300 * time.Millisecond

// Normalize maps unknown difficulty strings to Medium.
func Normalize(d Difficulty) Difficulty {
	if _, ok := profiles[d]; ok {
		return d
	}
	return Medium
}

// TimeLimit returns the search budget for a difficulty.
func TimeLimit(d Difficulty) time.Duration {
	return profiles[Normalize(d)].timeLimit
}

// ThinkDelay returns the artificial pause before the bot acts. Continuing a
// jump chain uses a shorter pause than opening a turn.
func ThinkDelay(d Difficulty, continuing bool) time.Duration {
	if continuing {
		return continuationThinkDelay
	}
	return profiles[Normalize(d)].thinkDelay
}
