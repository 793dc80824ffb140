package intake

import (
	"context"
	"errors"
	"sync"
)

var errModelDown = errors.New("model unavailable")

// scriptedGenerator replays replies in order and records every prompt.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply, nil
}

func reply(replies ...string) Options {
	return Options{Generator: &scriptedGenerator{replies: replies}}
}

func failing() Options {
	return Options{Generator: &scriptedGenerator{err: errModelDown}}
}
