// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"io"
	"sync"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// progressSteps is the resolution of the progress bar.
const progressSteps = 100

// Progress renders the advisory completion estimate of one tool call.
// On a terminal it draws a pterm progress bar with the cursor hidden;
// elsewhere it is silent. It is safe to call from the poll goroutine.
type Progress struct {
	mu      sync.Mutex
	bar     *pterm.ProgressbarPrinter
	current int
	enabled bool
	out     io.Writer
	title   string
}

// NewProgress returns a renderer titled title. enabled is normally
// IsTerminal(os.Stderr).
func NewProgress(out io.Writer, title string, enabled bool) *Progress {
	return &Progress{out: out, title: title, enabled: enabled}
}

// Update moves the bar to fraction (0..1). The first call starts the bar.
func (p *Progress) Update(fraction float64) {
	if p == nil || !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		cursor.Hide()
		bar, err := pterm.DefaultProgressbar.
			WithTotal(progressSteps).
			WithTitle(p.title).
			WithWriter(p.out).
			WithRemoveWhenDone(true).
			WithShowCount(false).
			Start()
		if err != nil {
			cursor.Show()
			p.enabled = false
			return
		}
		p.bar = bar
	}

	target := int(fraction * progressSteps)
	if target > progressSteps {
		target = progressSteps
	}
	if delta := target - p.current; delta > 0 {
		p.bar.Add(delta)
		p.current = target
	}
}

// Done removes the bar and restores the cursor.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
		cursor.Show()
	}
}

// Current returns the last rendered step, 0..100.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
