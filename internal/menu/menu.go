// Package menu manages the Problems panel context-menu group.
package menu

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dkoosis/copyproblem/internal/config"
	"github.com/dkoosis/copyproblem/internal/logging"
)

// Action IDs and texts.
const (
	StandardCopyID    = "ProblemDescriptionAction"
	StandardCopyAltID = "CopyProblemDescription"
	StandardCopyText  = "Copy Problem Description"

	CopyProblemPlusID   = "CopyProblemPlus.CopyProblemWithContext"
	CopyProblemPlusText = "Copy Problem+"
)

// Action is one menu entry.
type Action struct {
	ID   string
	Text string
}

// IsStandardCopy reports whether a is the host's own copy action.
func (a Action) IsStandardCopy() bool {
	return a.ID == StandardCopyID || a.ID == StandardCopyAltID || a.Text == StandardCopyText
}

// Group is an ordered, concurrency-safe list of actions.
type Group struct {
	mu      sync.RWMutex
	actions []Action
}

// NewGroup returns a group holding actions in order.
func NewGroup(actions ...Action) *Group {
	return &Group{actions: append([]Action(nil), actions...)}
}

// DefaultGroup returns the panel group: the standard copy action followed
// by ours.
func DefaultGroup() *Group {
	return NewGroup(
		Action{ID: StandardCopyID, Text: StandardCopyText},
		Action{ID: CopyProblemPlusID, Text: CopyProblemPlusText},
	)
}

// Actions returns a copy of the current entries.
func (g *Group) Actions() []Action {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Action(nil), g.actions...)
}

// Has reports whether an action with id is present.
func (g *Group) Has(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.index(id) >= 0
}

// HasStandardCopy reports whether any form of the standard copy action
// is present.
func (g *Group) HasStandardCopy() bool {
	for _, a := range g.Actions() {
		if a.IsStandardCopy() {
			return true
		}
	}
	return false
}

func (g *Group) index(id string) int {
	for i, a := range g.actions {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Customizer shows or hides the standard copy action according to
// settings. Removed actions are remembered so they can be restored.
type Customizer struct {
	group *Group
	log   hclog.Logger

	removed []Action
}

// NewCustomizer returns a customizer for group.
func NewCustomizer(group *Group, log hclog.Logger) *Customizer {
	return &Customizer{group: group, log: logging.OrNull(log).Named("menu")}
}

// Listener adapts Apply to a config.Store subscription.
func (c *Customizer) Listener() config.Listener {
	return func(s config.Snapshot) {
		c.Apply(s.Settings)
	}
}

// Apply updates the group for s. Calling it repeatedly with the same
// settings leaves the group unchanged.
func (c *Customizer) Apply(s config.Settings) {
	if s.HideStandardCopyAction {
		c.hide()
	} else {
		c.restore()
	}
}

func (c *Customizer) hide() {
	g := c.group
	g.mu.Lock()
	defer g.mu.Unlock()

	kept := g.actions[:0:0]
	for _, a := range g.actions {
		if a.IsStandardCopy() {
			c.removed = append(c.removed, a)
			c.log.Debug("hid action", "id", a.ID)
			continue
		}
		kept = append(kept, a)
	}
	g.actions = kept
}

func (c *Customizer) restore() {
	if len(c.removed) == 0 {
		return
	}
	g := c.group
	g.mu.Lock()
	defer g.mu.Unlock()

	var restore []Action
	for _, a := range c.removed {
		if g.index(a.ID) < 0 {
			restore = append(restore, a)
		}
	}
	c.removed = nil
	if len(restore) == 0 {
		return
	}

	at := len(g.actions)
	if i := g.index(CopyProblemPlusID); i >= 0 {
		at = i + 1
	}
	next := make([]Action, 0, len(g.actions)+len(restore))
	next = append(next, g.actions[:at]...)
	next = append(next, restore...)
	next = append(next, g.actions[at:]...)
	g.actions = next
	c.log.Debug("restored actions", "count", len(restore))
}
