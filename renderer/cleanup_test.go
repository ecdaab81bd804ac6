package renderer

import "testing"

func TestTeardownRunsInReverseOrder(t *testing.T) {
	var stack teardownStack
	var got []string

	for _, name := range []string{"instance", "surface", "device", "swapchain"} {
		name := name
		stack.push(name, func() { got = append(got, name) })
	}
	stack.run(nil)

	want := []string{"swapchain", "device", "surface", "instance"}
	if len(got) != len(want) {
		t.Fatalf("ran %d steps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTeardownIsIdempotent(t *testing.T) {
	var stack teardownStack
	runs := 0
	stack.push("resource", func() { runs++ })

	stack.run(nil)
	stack.run(nil)

	if runs != 1 {
		t.Errorf("destroy ran %d times, want 1", runs)
	}
}

func TestTeardownOrderPreview(t *testing.T) {
	var stack teardownStack
	stack.push("first", func() {})
	stack.push("second", func() {})

	order := stack.order()
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("got %v, want [second first]", order)
	}
}

func TestEmptyTeardown(t *testing.T) {
	var stack teardownStack
	stack.run(nil)

	if got := stack.order(); len(got) != 0 {
		t.Errorf("empty stack reports order %v", got)
	}
}
