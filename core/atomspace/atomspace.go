package atomspace

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/v2/sets/treeset"

	"github.com/EchoCog/atomreason/core/corectx"
)

func handleComparator(a, b Handle) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtomSpace is the content-addressed, indexed, single-writer/multi-reader
// hypergraph store of §4.1. It is the sole owner of every Atom it contains;
// outgoing and incoming references are plain Handles, never pointers, so the
// graph can be cyclic without anyone owning a back-reference (Design Notes:
// "Cyclic structure").
type AtomSpace struct {
	ctx *corectx.Context

	mu sync.RWMutex

	nextHandle Handle
	identity   map[identityKey]Handle
	atoms      map[Handle]*Atom

	byType     map[Type]*treeset.Set[Handle]
	byTypeName map[identityKey]Handle // node (type,name) -> handle, mirrors identity for nodes
	incoming   map[Handle]*treeset.Set[Handle]
}

// New creates an empty AtomSpace. ctx may be nil, in which case logging goes
// to slog.Default() and the real clock is used (see corectx.Context.Log/Clock).
func New(ctx *corectx.Context) *AtomSpace {
	return &AtomSpace{
		ctx:        ctx,
		identity:   make(map[identityKey]Handle),
		atoms:      make(map[Handle]*Atom),
		byType:     make(map[Type]*treeset.Set[Handle]),
		byTypeName: make(map[identityKey]Handle),
		incoming:   make(map[Handle]*treeset.Set[Handle]),
	}
}

// AddNode interns a ConceptNode/PredicateNode/etc atom. If (type, name)
// already exists, the existing atom's handle is returned and tv (if
// supplied) is merged per TruthValue.Merge; otherwise a new atom is created
// with tv defaulting to the vacuous truth value.
func (as *AtomSpace) AddNode(t Type, name string, tv *TruthValue) (Atom, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	key := nodeIdentity(t, name)
	if h, ok := as.identity[key]; ok {
		return as.mergeTV(h, tv), nil
	}

	h := as.allocHandle()
	atom := &Atom{
		Handle: h,
		Kind:   KindNode,
		Type:   t,
		Name:   name,
		TV:     resolveTV(tv),
	}
	as.atoms[h] = atom
	as.identity[key] = h
	as.byTypeName[key] = h
	as.indexType(t, h)
	as.ctx.Log().Debug("atomspace: added node", "handle", h, "type", t, "name", name)
	return *atom, nil
}

// AddLink interns a Link atom over outgoing, which must all already be
// resident in this AtomSpace (I2); otherwise ErrInvalidArgument is returned.
// Duplicate identity merges tv exactly as AddNode does.
func (as *AtomSpace) AddLink(t Type, outgoing []Handle, tv *TruthValue) (Atom, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	for _, h := range outgoing {
		if _, ok := as.atoms[h]; !ok {
			return Atom{}, fmt.Errorf("%w: outgoing handle %d not resident", ErrInvalidArgument, h)
		}
	}

	out := append([]Handle(nil), outgoing...)
	key := linkIdentity(t, out)
	if h, ok := as.identity[key]; ok {
		return as.mergeTV(h, tv), nil
	}

	h := as.allocHandle()
	atom := &Atom{
		Handle:   h,
		Kind:     KindLink,
		Type:     t,
		Outgoing: out,
		TV:       resolveTV(tv),
	}
	as.atoms[h] = atom
	as.identity[key] = h
	as.indexType(t, h)
	for _, child := range out {
		as.incomingSet(child).Add(h)
	}
	as.ctx.Log().Debug("atomspace: added link", "handle", h, "type", t, "arity", len(out))
	return *atom, nil
}

func resolveTV(tv *TruthValue) TruthValue {
	if tv == nil {
		return Default()
	}
	return tv.Clamp()
}

// mergeTV applies the §4.1 monotonic merge to the stored atom at h and
// returns a copy of the atom's (possibly updated) current state. Must be
// called with as.mu held for writing.
func (as *AtomSpace) mergeTV(h Handle, tv *TruthValue) Atom {
	atom := as.atoms[h]
	if tv != nil {
		if merged, updated := Merge(atom.TV, *tv); updated {
			next := *atom
			next.TV = merged
			as.atoms[h] = &next
			atom = &next
		}
	}
	return *atom
}

func (as *AtomSpace) allocHandle() Handle {
	as.nextHandle++
	return as.nextHandle
}

func (as *AtomSpace) indexType(t Type, h Handle) {
	set, ok := as.byType[t]
	if !ok {
		set = treeset.NewWith(handleComparator)
		as.byType[t] = set
	}
	set.Add(h)
}

func (as *AtomSpace) incomingSet(h Handle) *treeset.Set[Handle] {
	set, ok := as.incoming[h]
	if !ok {
		set = treeset.NewWith(handleComparator)
		as.incoming[h] = set
	}
	return set
}

// Contains reports whether an atom with a's identity is already resident.
func (as *AtomSpace) Contains(a Atom) bool {
	as.mu.RLock()
	defer as.mu.RUnlock()

	var key identityKey
	if a.Kind == KindNode {
		key = nodeIdentity(a.Type, a.Name)
	} else {
		key = linkIdentity(a.Type, a.Outgoing)
	}
	_, ok := as.identity[key]
	return ok
}

// GetAtom returns the atom stored at handle h, or ErrNotFound.
func (as *AtomSpace) GetAtom(h Handle) (Atom, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	atom, ok := as.atoms[h]
	if !ok {
		return Atom{}, ErrNotFound
	}
	return *atom, nil
}

// GetAtomsByType enumerates all atoms of type t, and of its registered
// subtypes when subtypes is true. Order is unspecified (callers must not
// depend on it). Within one type atoms come in ascending handle order, since
// the backing index is an ordered set keyed by handle; when subtypes pulls in
// several types, the order of those types follows map iteration and is not
// deterministic.
func (as *AtomSpace) GetAtomsByType(t Type, subtypes bool) []Atom {
	as.mu.RLock()
	defer as.mu.RUnlock()

	var out []Atom
	for typ, set := range as.byType {
		if typ != t && !(subtypes && SubtypeOf(typ, t)) {
			continue
		}
		for _, h := range set.Values() {
			out = append(out, *as.atoms[h])
		}
	}
	return out
}

// GetNodesByName returns the node(s) with the given name and type. Node
// identity is (type, name), so this returns at most one atom, but the
// sequence-valued signature of §4.1 is kept for uniformity with
// GetAtomsByType.
func (as *AtomSpace) GetNodesByName(name string, t Type) []Atom {
	as.mu.RLock()
	defer as.mu.RUnlock()

	h, ok := as.byTypeName[nodeIdentity(t, name)]
	if !ok {
		return nil
	}
	return []Atom{*as.atoms[h]}
}

// IncomingSet returns the handles of links whose outgoing sequence includes
// h (P2: for every link L and child C, L is in C's incoming set).
func (as *AtomSpace) IncomingSet(h Handle) []Handle {
	as.mu.RLock()
	defer as.mu.RUnlock()

	set, ok := as.incoming[h]
	if !ok {
		return nil
	}
	return append([]Handle(nil), set.Values()...)
}

// Size is the total atom count.
func (as *AtomSpace) Size() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return len(as.atoms)
}

// NodeCount and LinkCount partition Size by Kind.
func (as *AtomSpace) NodeCount() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	n := 0
	for _, a := range as.atoms {
		if a.Kind == KindNode {
			n++
		}
	}
	return n
}

func (as *AtomSpace) LinkCount() int {
	as.mu.RLock()
	defer as.mu.RUnlock()
	n := 0
	for _, a := range as.atoms {
		if a.Kind == KindLink {
			n++
		}
	}
	return n
}
