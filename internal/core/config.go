package core

import "time"

// RuntimeConfig is what the platform hands a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // simulation ticks per second
	Seed     int64 // layout seed; equal seeds build equal mazes
}

// DefaultConfig returns an 80x24 terminal at 60 ticks per second.
// A zero Seed asks the platform to pick one from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a run the platform reads back after each tick.
type GameState struct {
	Score    int  // zero until the run is won
	GameOver bool // the goal was reached
	Paused   bool

	Elapsed      time.Duration // simulated play time, frozen once GameOver
	DoorsToggled int
	Layout       string // fingerprint of the maze being played
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
