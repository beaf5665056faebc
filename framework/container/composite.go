package container

// CompositeContainer tries independent containers in order; the first that
// has an identifier serves it.
type CompositeContainer struct {
	containers []Locator
}

// NewComposite creates a composite over containers. Every Composable member
// gets the composite as its parent, so its own nested lookups can reach
// sibling containers.
func NewComposite(containers ...Locator) (*CompositeContainer, error) {
	if len(containers) == 0 {
		return nil, &ContainerError{Reason: "at least one container must be provided to the composite container"}
	}
	cc := &CompositeContainer{containers: append([]Locator(nil), containers...)}
	for _, inner := range cc.containers {
		if comp, ok := inner.(Composable); ok {
			if err := comp.SetParent(cc); err != nil {
				return nil, err
			}
		}
	}
	return cc, nil
}

func (cc *CompositeContainer) Has(id string) bool {
	return cc.find(id) != nil
}

func (cc *CompositeContainer) Get(id string) (any, error) {
	if inner := cc.find(id); inner != nil {
		return inner.Get(id)
	}
	return nil, &NotFoundError{ID: id}
}

func (cc *CompositeContainer) find(id string) Locator {
	for _, inner := range cc.containers {
		if inner.Has(id) {
			return inner
		}
	}
	return nil
}
