package termstructure

// Handle is a relinkable reference to a curve. Everything priced through a
// handle observes LinkTo immediately; LinkTo is the only way to retarget it.
type Handle struct {
	target *Curve
}

// NewHandle returns a handle linked to c, which may be nil.
func NewHandle(c *Curve) *Handle {
	return &Handle{target: c}
}

// LinkTo retargets the handle.
func (h *Handle) LinkTo(c *Curve) {
	h.target = c
}

// Current returns the linked curve or nil.
func (h *Handle) Current() *Curve {
	return h.target
}

// Empty reports whether the handle has no target.
func (h *Handle) Empty() bool {
	return h.target == nil
}

// Curve returns the linked curve or ErrEmptyHandle.
func (h *Handle) Curve() (*Curve, error) {
	if h.target == nil {
		return nil, ErrEmptyHandle
	}
	return h.target, nil
}
