package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/common"
)

// ErrOutOfOrder is returned by Signup when a step is attempted before the
// steps it depends on. No request is sent.
var ErrOutOfOrder = errors.New("signup step out of order")

// FlowError is a workflow failure. Kind is one of the common sentinels (or
// ErrOutOfOrder), Message is safe to show to the user, Err is the cause.
type FlowError struct {
	Kind    error
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *FlowError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func flowErr(kind error, msg string, cause error) *FlowError {
	return &FlowError{Kind: kind, Message: msg, Err: cause}
}

// UserMessage returns the message of a *FlowError in err's chain, or
// MsgGeneric for anything else.
func UserMessage(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return MsgGeneric
}

// classify maps a client error to the taxonomy. A backend error with a
// message is unknown unless the caller recognizes it.
func classify(err error) error {
	if errors.Is(err, common.ErrTransport) {
		return common.ErrTransport
	}
	if _, ok := client.AsAPIError(err); ok {
		return common.ErrUnknownRemote
	}
	return common.ErrTransport
}
