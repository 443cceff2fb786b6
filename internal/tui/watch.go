package tui

import "sort"

// watchRegistry is the document-level subscription table shared by all block
// cells: who is watching focus transitions, and who is watching pointer
// motion. Registration is idempotent so repeated state transitions never
// accumulate duplicate bindings, and teardown removes exactly what a cell
// added.
type watchRegistry struct {
	focusOrder []string
	focus      map[string]bool
	motion     map[string]bool
}

func newWatchRegistry() *watchRegistry {
	return &watchRegistry{
		focus:  map[string]bool{},
		motion: map[string]bool{},
	}
}

func (w *watchRegistry) setFocusWatch(id string, on bool) {
	if on {
		if !w.focus[id] {
			w.focus[id] = true
			w.focusOrder = append(w.focusOrder, id)
		}
		return
	}
	if w.focus[id] {
		delete(w.focus, id)
		for i, fid := range w.focusOrder {
			if fid == id {
				w.focusOrder = append(w.focusOrder[:i], w.focusOrder[i+1:]...)
				break
			}
		}
	}
}

func (w *watchRegistry) focusWatching(id string) bool { return w.focus[id] }

// focusWatchers returns watcher ids in registration order. Dispatch order
// matters: a watcher that consumes a focus event hides it from watchers
// registered after it.
func (w *watchRegistry) focusWatchers() []string {
	out := make([]string, len(w.focusOrder))
	copy(out, w.focusOrder)
	return out
}

func (w *watchRegistry) setMotionWatch(id string, on bool) {
	if on {
		w.motion[id] = true
		return
	}
	delete(w.motion, id)
}

func (w *watchRegistry) motionWatching(id string) bool { return w.motion[id] }

func (w *watchRegistry) motionWatchers() []string {
	out := make([]string, 0, len(w.motion))
	for id := range w.motion {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// release drops every subscription a cell holds (teardown path).
func (w *watchRegistry) release(id string) {
	w.setFocusWatch(id, false)
	w.setMotionWatch(id, false)
}

func (w *watchRegistry) empty() bool {
	return len(w.focus) == 0 && len(w.motion) == 0
}
