package task

import "strings"

// OutputSlot is a named production point on a task.
type OutputSlot struct {
	Task *Task
	Name string
}

// String renders the slot as "task.slot".
func (s *OutputSlot) String() string {
	return s.Task.ID + "." + s.Name
}

// Target resolves the artifact path the slot produces.
func (s *OutputSlot) Target() (string, error) {
	decl, ok := s.Task.Class.Output(s.Name)
	if !ok {
		return "", errNoSlot(s)
	}
	if decl.Target != nil {
		return decl.Target(s.Task)
	}
	input := decl.Input
	if input == "" && len(s.Task.Class.Inputs) > 0 {
		input = s.Task.Class.Inputs[0]
	}
	return OutputFromInput(s.Task, input, decl.Strip, decl.Add)
}

// Feed maps format ids to the producers resolved for them. Producers of
// the same format id accumulate in encounter order.
type Feed struct {
	order []string
	slots map[string][]*OutputSlot
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{slots: make(map[string][]*OutputSlot)}
}

// Add merges a producer under formatID.
func (f *Feed) Add(formatID string, s *OutputSlot) {
	if _, ok := f.slots[formatID]; !ok {
		f.order = append(f.order, formatID)
	}
	f.slots[formatID] = append(f.slots[formatID], s)
}

// AddTask merges every output slot of t under its own name.
func (f *Feed) AddTask(t *Task) {
	for _, s := range t.OutputSlots() {
		f.Add(s.Name, s)
	}
}

// Len returns the number of distinct format ids.
func (f *Feed) Len() int { return len(f.order) }

// Empty reports whether nothing was resolved.
func (f *Feed) Empty() bool { return len(f.order) == 0 }

// Formats returns the format ids in encounter order.
func (f *Feed) Formats() []string {
	return append([]string(nil), f.order...)
}

// Get returns the producers of formatID.
func (f *Feed) Get(formatID string) []*OutputSlot {
	return f.slots[formatID]
}

// Scalar returns the producer of formatID when there is exactly one.
func (f *Feed) Scalar(formatID string) (*OutputSlot, bool) {
	s := f.slots[formatID]
	if len(s) != 1 {
		return nil, false
	}
	return s[0], true
}

// String renders the feed for diagnostics.
func (f *Feed) String() string {
	parts := make([]string, 0, len(f.order))
	for _, id := range f.order {
		names := make([]string, len(f.slots[id]))
		for i, s := range f.slots[id] {
			names[i] = s.String()
		}
		parts = append(parts, id+"="+strings.Join(names, ","))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
