package records

import (
	"fmt"

	"fleet_registry/pkg/storeerr"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotSpecified
	KindNotFound
	KindDuplicateKey
	KindConstraintViolation
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotSpecified:
		return "not_specified"
	case KindNotFound:
		return "not_found"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindConstraintViolation:
		return "constraint_violation"
	default:
		return "unexpected"
	}
}

// User-facing messages.
const (
	MsgMissingParameter = "one of the parameters is not specified"
	MsgNotSpecified     = "no record selected"
	MsgNotFound         = "the selected record does not exist"
	MsgUnexpected       = "an unexpected error occurred"
	MsgHasDependents    = "the record cannot be changed or deleted because other tables depend on it"
	MsgDuplicateBrand   = "a brand with this title already exists"
	MsgDuplicateCar     = "a car with this number already exists"
	MsgUnknownBrand     = "a car cannot reference a brand missing from the brands table"
	MsgUnknownCar       = "a record cannot reference a car number missing from the cars table"
	MsgInvalidNumber    = "invalid car number format"
	MsgInvalidValue     = "a value has an invalid format or is out of range"
)

// Error is what a controller operation fails with. Message is safe to show.
type Error struct {
	Kind     Kind
	Category storeerr.Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func missingParameter() error {
	return &Error{Kind: KindValidation, Message: MsgMissingParameter}
}

// InvalidParameter reports an inbound value that could not be parsed.
func InvalidParameter(name string) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf("parameter %q has an invalid value", name)}
}

func notSpecified() error {
	return &Error{Kind: KindNotSpecified, Message: MsgNotSpecified}
}

func notFound() error {
	return &Error{Kind: KindNotFound, Message: MsgNotFound}
}

func duplicate(msg string) error {
	return &Error{Kind: KindDuplicateKey, Category: storeerr.Unique, Message: msg}
}

func unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: MsgUnexpected, Err: err}
}

// storeError maps a failed write through msgs. Categories without a message
// stay unexpected.
func storeError(err error, msgs storeerr.Messages) error {
	if err == nil {
		return nil
	}
	cat := storeerr.Classify(err)
	msg, ok := msgs.Lookup(cat)
	if !ok {
		return unexpected(err)
	}
	kind := KindConstraintViolation
	if cat == storeerr.Unique {
		kind = KindDuplicateKey
	}
	return &Error{Kind: kind, Category: cat, Message: msg, Err: err}
}
