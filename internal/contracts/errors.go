package contracts

import (
	"errors"
	"fmt"
)

// MissingConceptError is returned when a statement lacks a concept the
// universal metrics cannot be derived without. It aborts that company's
// derivation only; batch runs catch it per symbol and continue.
type MissingConceptError struct {
	Symbol    string
	Concept   Concept
	Statement string
}

func (e *MissingConceptError) Error() string {
	return fmt.Sprintf("missing concept %q in %s statement for %s", e.Concept, e.Statement, e.Symbol)
}

// IsMissingConcept reports whether err is a MissingConceptError.
func IsMissingConcept(err error) bool {
	var target *MissingConceptError
	return errors.As(err, &target)
}
