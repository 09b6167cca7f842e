package atomspace

import "errors"

// Sentinel errors the core signals, per the error-handling design (§7).
// Budget-exhausted and conflict conditions are deliberately not errors —
// they're returned as normal results (see pln/ure Result types and
// TruthValue.Merge's bool return).
var (
	// ErrInvalidArgument is returned for ill-typed arguments: an AddLink
	// whose outgoing sequence references a handle not resident in this
	// AtomSpace.
	ErrInvalidArgument = errors.New("atomspace: invalid argument")

	// ErrNotFound is returned by lookups (GetAtom and friends) that find
	// nothing at the given handle.
	ErrNotFound = errors.New("atomspace: atom not found")
)
