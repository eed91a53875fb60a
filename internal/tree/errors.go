package tree

import "fmt"

// CollisionKind names what already occupies a contested address.
type CollisionKind string

const (
	// CollisionModule: the address already holds a module.
	CollisionModule CollisionKind = "module"
	// CollisionCategory: the address is an implied category.
	CollisionCategory CollisionKind = "category"
	// CollisionDocument: two modules would render to the same document file.
	CollisionDocument CollisionKind = "document"
)

// CollisionError reports two entities claiming the same tree address (or document name).
type CollisionError struct {
	Kind     CollisionKind
	Address  string
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("address collision at %q: %s (%s) conflicts with %s", e.Address, e.Existing, e.Kind, e.Incoming)
}
