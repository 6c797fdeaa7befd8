package resolver

import (
	"fmt"
	"strings"

	"github.com/kbukum/nlpwire/errors"
	"github.com/kbukum/nlpwire/task"
)

// autoSetup wires a single-step component: the feed must hold exactly one
// format id, and the first candidate class with an input slot of that name
// gets the producers bound to it.
func (r *Resolver) autoSetup(sc *setupContext, feed *task.Feed) ([]*task.Task, error) {
	desc := sc.inst.desc
	if len(desc.AutoSetup) == 0 {
		return nil, errors.AutoSetup(desc.Name, "no setup function and no autosetup task classes")
	}
	if feed.Len() != 1 {
		return nil, errors.AutoSetup(desc.Name, fmt.Sprintf("autosetup only works for single input/output tasks, got input formats %s", strings.Join(feed.Formats(), ", ")))
	}
	inputType := feed.Formats()[0]

	tried := make([]string, 0, len(desc.AutoSetup))
	for _, class := range desc.AutoSetup {
		tried = append(tried, class.Name)
		if !class.HasInput(inputType) {
			continue
		}
		if len(class.Outputs) == 0 {
			return nil, errors.AutoSetup(desc.Name, "no output slots found on "+class.Name)
		}
		t, err := sc.NewTask(class.Name, class, nil)
		if err != nil {
			return nil, err
		}
		if err := t.Bind(inputType, feed.Get(inputType)...); err != nil {
			return nil, err
		}
		return []*task.Task{t}, nil
	}
	return nil, errors.AutoSetup(desc.Name, fmt.Sprintf("no matching input slots found (looking for %s on %s)", inputType, strings.Join(tried, ", ")))
}
