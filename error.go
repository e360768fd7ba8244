package lexref

import "fmt"

// Kind classifies an Error by the pipeline stage that raised it.
// Kinds are numbered consecutively from 100 (BadCitation) upward.
type Kind int

const (
	// BadCitation means the CELEX codec could not parse an ordinate.
	BadCitation Kind = 100 + iota

	// InconsistentTarget means contextualisation produced a nonsensical
	// mix of roles along a root-to-leaf path.
	InconsistentTarget

	// UnsupportedRole means a phrase-role coordinate reached a stage that
	// only handles addressable roles.
	UnsupportedRole

	// JoiningError means a back-reference token could not be resolved
	// against the recent target cycle.
	JoiningError

	// NestingError means the Nesting Engine produced a tree that violates
	// a level/parent invariant.
	NestingError

	// RecursionDepthExceeded means the CELEX codec's Regulation/Directive
	// fallback recursed more than the one hop it is allowed.
	RecursionDepthExceeded
)

func (k Kind) String() string {
	switch k {
	case BadCitation:
		return "BadCitation"
	case InconsistentTarget:
		return "InconsistentTarget"
	case UnsupportedRole:
		return "UnsupportedRole"
	case JoiningError:
		return "JoiningError"
	case NestingError:
		return "NestingError"
	case RecursionDepthExceeded:
		return "RecursionDepthExceeded"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned by lexref subpackages.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Message contains a human-readable description of the failure.
	Message string

	// Language contains the language tag in effect when the failure
	// occurred, or the empty string if not applicable.
	Language string

	// Tag contains the offending axis/value tag, if any.
	Tag string

	// Span contains the offending source span as "start:end", or the
	// empty string if not applicable.
	Span string
}

// Error returns e.Message, satisfying the error interface.
func (e *Error) Error() string {
	return e.Message
}

// newError builds an Error, composing a message from msg and params the
// way fmt.Sprintf would.
func newError(kind Kind, lang, tag, span, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return &Error{Kind: kind, Message: msg, Language: lang, Tag: tag, Span: span}
}

// NewError builds an Error with no language/tag/span context attached.
func NewError(kind Kind, msg string, params ...any) *Error {
	return newError(kind, "", "", "", msg, params...)
}

// NewTagError builds an Error naming the offending language and tag.
func NewTagError(kind Kind, lang, tag, msg string, params ...any) *Error {
	return newError(kind, lang, tag, "", msg, params...)
}

// NewSpanError builds an Error naming the offending source span.
func NewSpanError(kind Kind, span, msg string, params ...any) *Error {
	return newError(kind, "", "", span, msg, params...)
}

// Skippable reports whether err should be swallowed (offending coordinate
// skipped) rather than aborting the enclosing reference loop. Only
// InconsistentTarget aborts; every other *Error, and any non-lexref error
// surfaced through an invariant check, is skippable.
func Skippable(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return true
	}
	if e.Kind == InconsistentTarget {
		return false
	}
	return true
}

// Aborts reports whether err should abort the enclosing reference loop and
// increment its error counter, per §7: only InconsistentTarget does.
func Aborts(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == InconsistentTarget
}
