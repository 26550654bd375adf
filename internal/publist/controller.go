package publist

import "github.com/jajnabi/folio/internal/reference"

// State is the controller's complete mutable state.
type State struct {
	Filter FilterType `json:"filter"`
	Order  SortOrder  `json:"sort"`
}

// InitialState is all publications, newest first.
var InitialState = State{Filter: All, Order: Desc}

// View is one derived rendering input: the state and the publications it
// selects.
type View struct {
	State        State
	Publications []reference.Publication
}

// Listener is invoked with the freshly derived view after every state change.
type Listener func(View)

// Controller holds filter and sort state over an immutable publication
// collection. Each change re-derives the view in full and notifies
// listeners. A Controller is not safe for concurrent use.
type Controller struct {
	pubs      []reference.Publication
	state     State
	listeners []Listener
}

// NewController returns a controller in InitialState.
func NewController(pubs []reference.Publication) *Controller {
	return &Controller{pubs: pubs, state: InitialState}
}

// OnChange registers a re-render trigger.
func (c *Controller) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// View derives the view for the current state.
func (c *Controller) View() View {
	return View{
		State:        c.state,
		Publications: DeriveView(c.pubs, c.state.Filter, c.state.Order),
	}
}

// SetFilterType changes the filter and re-renders.
func (c *Controller) SetFilterType(f FilterType) error {
	f, err := ParseFilterType(string(f))
	if err != nil {
		return err
	}
	c.state.Filter = f
	c.changed()
	return nil
}

// ToggleSort flips the sort order and re-renders.
func (c *Controller) ToggleSort() {
	c.state.Order = c.state.Order.Toggle()
	c.changed()
}

func (c *Controller) changed() {
	v := c.View()
	for _, l := range c.listeners {
		l(v)
	}
}
