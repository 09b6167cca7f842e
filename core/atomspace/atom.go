package atomspace

import "strings"

// Handle is an opaque, stable identifier for an atom within one AtomSpace.
// It is never reused for the lifetime of the AtomSpace (I3), even if the
// atom it named is later evicted by an external storage collaborator.
type Handle uint64

// invalidHandle is returned by lookups that find nothing; zero is never
// assigned to a real atom (the handle counter starts at 1).
const invalidHandle Handle = 0

// Kind tags the two members of the Atom sum type, per Design Notes'
// "Polymorphism over atom kinds": one concrete struct, dispatch on Kind +
// Type rather than a nominal Node/Link interface hierarchy.
type Kind uint8

const (
	KindNode Kind = iota
	KindLink
)

// Atom is the tagged sum {Node, Link}. Nodes carry Name and leave Outgoing
// nil; Links carry Outgoing (ordered, I2) and leave Name empty. Atoms are
// only ever constructed by an AtomSpace, which is the sole owner of the
// Handle space (Design Notes: "model the AtomSpace as the sole owner").
type Atom struct {
	Handle   Handle
	Kind     Kind
	Type     Type
	Name     string
	Outgoing []Handle
	TV       TruthValue
}

// Arity is len(Outgoing); zero for nodes.
func (a Atom) Arity() int { return len(a.Outgoing) }

// identityKey is the I1 identity of an atom: (type, name) for nodes,
// (type, outgoing sequence) for links. It is comparable so it can key the
// AtomSpace's intern map directly.
type identityKey struct {
	typ     Type
	name    string
	outSeq  string // Outgoing handles rendered positionally; empty for nodes.
}

func nodeIdentity(t Type, name string) identityKey {
	return identityKey{typ: t, name: name}
}

func linkIdentity(t Type, outgoing []Handle) identityKey {
	var b strings.Builder
	for i, h := range outgoing {
		if i > 0 {
			b.WriteByte(',')
		}
		writeHandle(&b, h)
	}
	return identityKey{typ: t, outSeq: b.String()}
}

func writeHandle(b *strings.Builder, h Handle) {
	if h == 0 {
		b.WriteByte('0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for h > 0 {
		i--
		buf[i] = byte('0' + h%10)
		h /= 10
	}
	b.Write(buf[i:])
}
