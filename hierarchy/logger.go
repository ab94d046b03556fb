package hierarchy

import (
	"log"

	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

// BuildLogger writes a line for every component created and every link made
// or undone while a hierarchy is incorporated.
type BuildLogger struct {
	sim.LogHookBase
}

// NewBuildLogger creates a BuildLogger that writes to the given logger.
func NewBuildLogger(logger *log.Logger) *BuildLogger {
	h := new(BuildLogger)
	h.Logger = logger

	return h
}

// Func writes the log line.
func (h *BuildLogger) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosComponentCreated:
		c := ctx.Item.(sim.Component)
		h.Logger.Printf("create %s", c.Name())
	case wiring.HookPosLinkConnect:
		l := ctx.Item.(*wiring.Link)
		h.Logger.Printf("connect %s", l.Name())
	case wiring.HookPosLinkDisconnect:
		l := ctx.Item.(*wiring.Link)
		h.Logger.Printf("disconnect %s", l.Name())
	}
}
