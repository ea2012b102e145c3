package cmd

import (
	"errors"
	"fmt"
)

// ErrorKind tags the reason a dispatch stopped.
type ErrorKind int

const (
	InvalidArgument ErrorKind = iota + 1
	InvalidType
	TooFewArguments
	UnknownFlag
	CheckFailed
	HandlerFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case InvalidType:
		return "invalid type"
	case TooFewArguments:
		return "too few arguments"
	case UnknownFlag:
		return "unknown flag"
	case CheckFailed:
		return "check failed"
	case HandlerFailure:
		return "handler failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type produced by binding, coercion, checks and
// handler invocation. Which fields are set depends on Kind.
type Error struct {
	Kind ErrorKind

	Command  string
	Value    string // raw token, InvalidArgument and InvalidType
	Type     string // declared Type, InvalidArgument and InvalidType
	Flag     string // UnknownFlag
	Expected int    // TooFewArguments
	Got      int    // TooFewArguments
	Message  string // CheckFailed

	Err error
}

func (e *Error) Error() string {
	if e.Kind == CheckFailed && e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Reply()
}

func (e *Error) Unwrap() error { return e.Err }

// Reply renders the user-facing chat text for the error.
func (e *Error) Reply() string {
	switch e.Kind {
	case InvalidArgument, InvalidType:
		return fmt.Sprintf("Invalid argument '%s', expected argument of type '%s'", e.Value, Type(e.Type).DisplayName())
	case TooFewArguments:
		return fmt.Sprintf("Expected %d argument(s), but got %d argument(s)", e.Expected, e.Got)
	case UnknownFlag:
		return fmt.Sprintf(`Command "%s" has no flag "%s"`, e.Command, e.Flag)
	case CheckFailed:
		return e.Message
	default:
		return handlerFailureReply(e.Err)
	}
}

func handlerFailureReply(err error) string {
	return fmt.Sprintf("An error occurred while executing command: %v", err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func invalidArgument(value string, t Type, err error) *Error {
	return &Error{Kind: InvalidArgument, Value: value, Type: string(t), Err: err}
}
