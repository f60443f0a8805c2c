package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/quotebox/internal/cycle"
	"github.com/olivier-w/quotebox/internal/quote"
)

const noticeDuration = 2 * time.Second

var errNoSource = errors.New("no quote source configured")

type quotesLoadedMsg struct {
	batch quote.Batch
}

type quotesFailedMsg struct {
	err error
}

// transitionMsg carries a controller timer back into Update once it elapses.
type transitionMsg struct {
	timer cycle.Timer
}

type frameMsg time.Time

type shareAction int

const (
	shareOpen shareAction = iota
	shareCopy
)

func (a shareAction) String() string {
	if a == shareCopy {
		return "copy"
	}
	return "open"
}

type shareDoneMsg struct {
	action shareAction
	err    error
}

type noticeFadeMsg struct {
	seq int
}

func fetchCmd(ctx context.Context, src QuoteSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return quotesFailedMsg{err: errNoSource}
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		batch, err := src.Fetch(ctx)
		if err != nil {
			return quotesFailedMsg{err: err}
		}
		return quotesLoadedMsg{batch: batch}
	}
}

func timerCmd(t cycle.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return transitionMsg{timer: t}
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/fadeFPS, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func noticeFadeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}
