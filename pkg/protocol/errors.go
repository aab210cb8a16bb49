package protocol

import "errors"

// Sentinel errors for the protocol package. Returned errors wrap these with
// detail; check the kind with errors.Is.
var (
	// ErrInvalidArgument reports malformed caller input: a nil or undersized
	// buffer handed to DecodeHeader, or a blank subject at construction.
	ErrInvalidArgument = errors.New("protocol: invalid argument")

	// ErrBadHeader reports a structural violation of the header wire format
	// in the decoded bytes, as opposed to a bad argument from the caller.
	ErrBadHeader = errors.New("protocol: malformed header")

	// ErrNoReplySubject is returned by Respond when the message carries no
	// reply subject.
	ErrNoReplySubject = errors.New("protocol: message has no reply subject")

	// ErrMsgNotBound is returned by Respond when the message is not bound to
	// a subscription with a live publisher.
	ErrMsgNotBound = errors.New("protocol: message not bound to a subscription")

	// ErrNoCodec is returned by the typed-body helpers when no codec is
	// registered for the message's content type.
	ErrNoCodec = errors.New("protocol: no codec for content type")
)
