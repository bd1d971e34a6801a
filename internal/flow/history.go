package flow

// HistoryPort binds step transitions to the host's history stack. Push is
// called on every forward transition, Back delegates a retreat to the
// native navigation, and Clear logically exhausts the flow's entries so a
// later back cannot resurrect a closed flow. The handler receives the step
// tag of the entry a navigation landed on; ok is false when that entry
// predates the flow.
type HistoryPort interface {
	Push(step Step)
	Back()
	Clear()
	SetHandler(handler func(step Step, ok bool))
}

// StackHistory is the in-memory history implementation. The stack starts
// with a single untagged entry standing in for the page the flow was
// opened from.
type StackHistory struct {
	stack   []*Step
	handler func(step Step, ok bool)
}

func NewStackHistory() *StackHistory {
	return &StackHistory{
		stack: []*Step{nil},
	}
}

func (h *StackHistory) Push(step Step) {
	s := step
	h.stack = append(h.stack, &s)
}

func (h *StackHistory) Back() {
	if len(h.stack) > 1 {
		h.stack = h.stack[:len(h.stack)-1]
	}

	if h.handler == nil {
		return
	}

	top := h.stack[len(h.stack)-1]
	if top == nil {
		h.handler(0, false)
		return
	}
	h.handler(*top, true)
}

func (h *StackHistory) Clear() {
	h.stack = h.stack[:1]
}

func (h *StackHistory) SetHandler(handler func(step Step, ok bool)) {
	h.handler = handler
}

// Depth reports how many flow entries are on the stack. Test hook.
func (h *StackHistory) Depth() int {
	return len(h.stack) - 1
}
