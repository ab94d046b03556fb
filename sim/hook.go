package sim

import "log"

// HookPos names a point at which hooks are invoked.
type HookPos struct {
	Name string
}

// HookCtx describes a single hook invocation.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is implemented by anything that hooks can be attached to.
type Hookable interface {
	AcceptHook(hook Hook)
}

// Hook is called back at the hook positions of the objects it is attached to.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase stores hooks and invokes them in the order they were added.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook attaches a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of attached hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook calls every attached hook with the context.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// LogHookBase is embedded by hooks that write what they observe to a logger.
type LogHookBase struct {
	*log.Logger
}
