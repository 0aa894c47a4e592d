package render

// Mount names used by the application.
const (
	MountPrimary = "primary"
	MountDetail  = "detail"
	MountShared  = "shared"
)

// Density selects the column set of variable-density fragments.
type Density int

const (
	DensityFull Density = iota
	DensityCondensed
)

// Mount is a named display surface. It owns the fragments for the slots in
// its layout and nothing else; renderers write only into the mount they are
// handed. Slots not in the layout are silently skipped.
type Mount struct {
	name    string
	density Density
	order   []Slot
	present map[Slot]bool
	frags   map[Slot]Fragment
	boundID int64
	epochs  map[Slot]uint64
}

// NewMount creates a mount with the given layout.
func NewMount(name string, density Density, slots ...Slot) *Mount {
	m := &Mount{
		name:    name,
		density: density,
		order:   append([]Slot(nil), slots...),
		present: make(map[Slot]bool, len(slots)),
		frags:   make(map[Slot]Fragment, len(slots)),
		epochs:  make(map[Slot]uint64, len(slots)),
	}
	for _, s := range slots {
		m.present[s] = true
	}
	return m
}

// NewPrimaryMount is the full-density layout of the analyze tab.
func NewPrimaryMount() *Mount {
	return NewMount(MountPrimary, DensityFull, append(append([]Slot(nil), ResultSlots...), PanelSlots...)...)
}

// NewDetailMount is the condensed layout of the history detail view.
func NewDetailMount() *Mount {
	return NewMount(MountDetail, DensityCondensed, append(append([]Slot(nil), ResultSlots...), PanelSlots...)...)
}

// NewSharedMount is the read-only share layout. It has no panels because
// they need an authenticated caller.
func NewSharedMount() *Mount {
	return NewMount(MountShared, DensityFull, ResultSlots...)
}

// Name returns the mount's name.
func (m *Mount) Name() string { return m.name }

// Density returns the mount's density.
func (m *Mount) Density() Density { return m.density }

// Has reports whether slot is part of the layout.
func (m *Mount) Has(slot Slot) bool {
	return m.present[slot]
}

// Fragment returns the current content of slot.
func (m *Mount) Fragment(slot Slot) (Fragment, bool) {
	f, ok := m.frags[slot]
	return f, ok
}

// Bind records which entity the mount currently shows.
func (m *Mount) Bind(id int64) {
	m.boundID = id
}

// BoundID returns the entity the mount currently shows, 0 if none.
func (m *Mount) BoundID() int64 {
	return m.boundID
}

// Reset empties the mount and invalidates every outstanding panel ticket.
func (m *Mount) Reset() {
	m.frags = make(map[Slot]Fragment, len(m.order))
	m.boundID = 0
	for _, s := range m.order {
		m.epochs[s]++
	}
}

// Empty reports whether nothing has been rendered into the mount.
func (m *Mount) Empty() bool {
	return len(m.frags) == 0
}

func (m *Mount) set(slot Slot, f Fragment) {
	if !m.present[slot] {
		return
	}
	f.Title = slot.Title()
	m.frags[slot] = f
}

// Ticket identifies one asynchronous panel load. Its result may be written
// only while the ticket is still current for its mount.
type Ticket struct {
	Mount string
	Slot  Slot
	ID    int64
	Epoch uint64
}

// Begin starts a panel load for the bound entity: it advances the slot's
// epoch, shows the loading indicator and returns the ticket. ok is false
// when the slot is not in the layout.
func (m *Mount) Begin(slot Slot) (t Ticket, ok bool) {
	if !m.present[slot] {
		return Ticket{}, false
	}
	m.epochs[slot]++
	m.set(slot, Fragment{Loading: true})
	return Ticket{Mount: m.name, Slot: slot, ID: m.boundID, Epoch: m.epochs[slot]}, true
}

// Accept reports whether a result for t may still be written.
func (m *Mount) Accept(t Ticket) bool {
	return t.Mount == m.name &&
		m.present[t.Slot] &&
		t.ID == m.boundID &&
		t.Epoch == m.epochs[t.Slot]
}
