// Package feedback provides collaborators notified after each executed move
// (sound cues, spoken notation, logs). None of them can affect the game.
package feedback

import (
	"log"

	"xiangqi/internal/game"
	"xiangqi/internal/turn"
)

// Log writes one line per move: kind, notation and the history record.
type Log struct {
	Logger *log.Logger
	Prefix string
}

func (l Log) Notify(ev game.Event) {
	logf := log.Printf
	if l.Logger != nil {
		logf = l.Logger.Printf
	}
	switch ev.Kind {
	case game.KindWin:
		logf("%s%s %s (%s), %s wins", l.Prefix, ev.Kind, ev.Notation(), ev.Record, ev.Winner)
	default:
		logf("%s%s %s (%s)", l.Prefix, ev.Kind, ev.Notation(), ev.Record)
	}
}

// Multi fans an event out; a panicking collaborator does not stop the others.
type Multi []turn.Feedback

func (m Multi) Notify(ev game.Event) {
	for _, f := range m {
		notifyOne(f, ev)
	}
}

func notifyOne(f turn.Feedback, ev game.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("feedback %T failed: %v", f, r)
		}
	}()
	f.Notify(ev)
}

// Cue maps an event to the sound the front-end should play.
func Cue(ev game.Event) string {
	return ev.Kind.String()
}
