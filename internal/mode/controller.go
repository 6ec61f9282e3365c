// Package mode holds the interactive/debug flag that decides how code is
// delivered to the session.
package mode

import (
	"sync"
)

// Indicator displays the current mode to the user
type Indicator interface {
	Update(label, tooltip string)
}

// Tooltips describes how each mode delivers code
type Tooltips struct {
	Interactive string
	Debug       string
}

// DefaultTooltips matches the default transports
var DefaultTooltips = Tooltips{
	Interactive: "Using clipboard paste for cells, line-by-line for selections",
	Debug:       "Using line-by-line execution for PDB",
}

// Controller owns the mode flag. It is the only thing allowed to change it.
type Controller struct {
	mu        sync.RWMutex
	current   Mode
	indicator Indicator
	tooltips  Tooltips
}

// NewController creates a controller starting in initial and pushes the
// initial state to indicator. A nil indicator is allowed.
func NewController(initial Mode, indicator Indicator, tooltips Tooltips) *Controller {
	if initial != Debug {
		initial = Interactive
	}
	c := &Controller{
		current:   initial,
		indicator: indicator,
		tooltips:  tooltips,
	}
	c.refresh(initial)
	return c
}

// Current returns the active mode
func (c *Controller) Current() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Toggle flips the mode unconditionally and returns the new one
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	c.current = c.current.Toggled()
	m := c.current
	c.mu.Unlock()

	c.refresh(m)
	return m
}

// Tooltip returns the descriptive text for m
func (c *Controller) Tooltip(m Mode) string {
	if m == Debug {
		return c.tooltips.Debug
	}
	return c.tooltips.Interactive
}

func (c *Controller) refresh(m Mode) {
	if c.indicator == nil {
		return
	}
	c.indicator.Update(m.Label(), c.Tooltip(m))
}
