package publist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestController_InitialState(t *testing.T) {
	c := NewController(samplePubs())
	if c.State() != InitialState {
		t.Errorf("State() = %+v, want %+v", c.State(), InitialState)
	}
	if got := len(c.View().Publications); got != len(samplePubs()) {
		t.Errorf("initial view has %d publications, want %d", got, len(samplePubs()))
	}
}

func TestController_TransitionsNotify(t *testing.T) {
	c := NewController(samplePubs())

	var views []View
	c.OnChange(func(v View) { views = append(views, v) })

	if err := c.SetFilterType(Preprint); err != nil {
		t.Fatalf("SetFilterType() error = %v", err)
	}
	c.ToggleSort()

	if len(views) != 2 {
		t.Fatalf("listener called %d times, want 2", len(views))
	}
	if views[0].State != (State{Filter: Preprint, Order: Desc}) {
		t.Errorf("first view state = %+v", views[0].State)
	}
	if diff := cmp.Diff([]string{"B", "C"}, titles(views[0].Publications)); diff != "" {
		t.Errorf("first view mismatch (-want +got):\n%s", diff)
	}
	if views[1].State != (State{Filter: Preprint, Order: Asc}) {
		t.Errorf("second view state = %+v", views[1].State)
	}
	if diff := cmp.Diff([]string{"C", "B"}, titles(views[1].Publications)); diff != "" {
		t.Errorf("second view mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ToggleTwiceRestores(t *testing.T) {
	c := NewController(samplePubs())
	before := titles(c.View().Publications)
	c.ToggleSort()
	c.ToggleSort()
	if c.State().Order != Desc {
		t.Errorf("Order = %q, want desc", c.State().Order)
	}
	if diff := cmp.Diff(before, titles(c.View().Publications)); diff != "" {
		t.Errorf("view changed after double toggle (-want +got):\n%s", diff)
	}
}

func TestController_RejectsUnknownFilter(t *testing.T) {
	c := NewController(samplePubs())
	called := false
	c.OnChange(func(View) { called = true })

	if err := c.SetFilterType("journal"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("SetFilterType() error = %v, want ErrUnknownFilter", err)
	}
	if called {
		t.Error("listener should not run for a rejected filter")
	}
	if c.State() != InitialState {
		t.Errorf("state changed to %+v", c.State())
	}
}

func TestController_IndependentInstances(t *testing.T) {
	pubs := samplePubs()
	a := NewController(pubs)
	b := NewController(pubs)

	if err := a.SetFilterType(Peer); err != nil {
		t.Fatal(err)
	}
	a.ToggleSort()

	if b.State() != InitialState {
		t.Errorf("second controller state = %+v, want initial", b.State())
	}
}
