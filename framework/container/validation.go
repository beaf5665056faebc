package container

import "go.uber.org/zap"

// stackEntry identifies one frame of a dry-run resolution.
type stackEntry struct {
	resolver int    // position in the resolver list
	key      string // normalized id
	id       string // as requested, for messages
}

// ValidationContainer is a dry-run container. It matches identifiers through
// the same resolvers as a real container but never builds anything; it walks
// the dependency shape implied by substitutes and withParams and fails on the
// first cycle or missing target.
type ValidationContainer struct {
	resolvers []Resolver
	stack     []stackEntry
	logger    *zap.Logger
}

// NewValidationContainer creates a validator over resolvers. logger may be nil.
func NewValidationContainer(resolvers []Resolver, logger *zap.Logger) *ValidationContainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationContainer{
		resolvers: append([]Resolver(nil), resolvers...),
		logger:    logger,
	}
}

// Get validates id and its dependencies. It always returns a nil value.
func (v *ValidationContainer) Get(id string) (any, error) {
	idx := v.resolverFor(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id, Reason: "no resolver during validation"}
	}
	r := v.resolvers[idx]

	entry := stackEntry{resolver: idx, key: NormalizeID(id), id: id}
	if v.onStack(entry) {
		chain := make([]string, 0, len(v.stack)+1)
		for _, e := range v.stack {
			chain = append(chain, e.id)
		}
		chain = append(chain, id)
		v.logger.Debug("validation: cycle", zap.Strings("chain", chain))
		return nil, &ContainerError{ID: id, Chain: chain}
	}

	v.stack = append(v.stack, entry)
	defer func() { v.stack = v.stack[:len(v.stack)-1] }()

	rf, err := r.Resolve(id, v)
	if err != nil {
		return nil, err
	}
	def := rf.Definition
	if def == nil {
		return nil, nil
	}

	if ref, ok := def.Substitute().ID(); ok && v.Has(ref) {
		if _, err := v.Get(ref); err != nil {
			return nil, err
		}
	}
	for i, p := range def.withParams {
		var dep string
		switch val := p.(type) {
		case Reference:
			if !v.Has(val.ID) {
				return nil, missingParam(id, i, val.ID)
			}
			dep = val.ID
		case string:
			dep = val
		default:
			continue
		}
		if dep == "" || !v.Has(dep) {
			continue
		}
		if _, err := v.Get(dep); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Has reports whether any resolver knows id.
func (v *ValidationContainer) Has(id string) bool {
	return v.resolverFor(id) >= 0
}

// Validate runs Get over every id and returns the first error.
func (v *ValidationContainer) Validate(ids []string) error {
	for _, id := range ids {
		if _, err := v.Get(id); err != nil {
			return err
		}
	}
	return nil
}

// resolverFor returns the index of the first resolver that has id, or -1.
func (v *ValidationContainer) resolverFor(id string) int {
	for i, r := range v.resolvers {
		if r.Has(id) {
			return i
		}
	}
	return -1
}

func (v *ValidationContainer) onStack(e stackEntry) bool {
	for _, s := range v.stack {
		if s.resolver == e.resolver && s.key == e.key {
			return true
		}
	}
	return false
}
