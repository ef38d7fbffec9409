package model

// optional is a string that may be unset. An empty string that was set is
// different from no value at all.
type optional struct {
	value string
	set   bool
}

func some(value string) optional {
	return optional{value: value, set: true}
}

func (o optional) get() (string, bool) {
	return o.value, o.set
}

// ptr returns nil for an unset value. Used for JSON encoding.
func (o optional) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func fromPtr(p *string) optional {
	if p == nil {
		return optional{}
	}
	return some(*p)
}

func (o optional) String() string {
	if !o.set {
		return "<nil>"
	}
	return o.value
}
