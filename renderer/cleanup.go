package renderer

import "github.com/sirupsen/logrus"

// teardownStep destroys one driver resource. Steps are pushed in creation
// order and must only ever run in reverse, after the owning resources of
// later steps are gone.
type teardownStep struct {
	name    string
	destroy func()
}

// teardownStack owns the destruction order for every resource created during
// setup. Running it is the only way resources are released, both for a full
// teardown and for unwinding a partially completed setup.
type teardownStack struct {
	steps []teardownStep
	done  bool
}

func (s *teardownStack) push(name string, destroy func()) {
	s.steps = append(s.steps, teardownStep{name: name, destroy: destroy})
}

// run destroys all recorded resources in reverse creation order. It is
// idempotent; the second and later calls do nothing.
func (s *teardownStack) run(log *logrus.Entry) {
	if s.done {
		return
	}
	s.done = true

	for i := len(s.steps) - 1; i >= 0; i-- {
		if log != nil {
			log.WithField("resource", s.steps[i].name).Trace("destroying")
		}
		s.steps[i].destroy()
	}
	s.steps = nil
}

// order returns the destruction order that run would use.
func (s *teardownStack) order() []string {
	names := make([]string, 0, len(s.steps))
	for i := len(s.steps) - 1; i >= 0; i-- {
		names = append(names, s.steps[i].name)
	}
	return names
}
