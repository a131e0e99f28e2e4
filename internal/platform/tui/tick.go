// Package tui provides the Bubble Tea integration for the room maze.
// It handles the terminal UI loop, input mapping, and run recording.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one simulation step. Chain identifies the model that
// scheduled it; a model ignores ticks from any other chain, such as the
// last tick of a maze the player already left.
type TickMsg struct {
	Time  time.Time
	Chain int64
}

var tickChains atomic.Int64

// newTickChain returns an ID no other model in the process uses.
func newTickChain() int64 {
	return tickChains.Add(1)
}

// tickCmd schedules the next tick of chain at tickRate per second.
func tickCmd(chain int64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Chain: chain}
	})
}
