package protocol

import (
	"fmt"
	"strings"
)

// Publisher is the connection-side collaborator Respond delegates to. The
// transport layer implements it; this package never touches the network.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Subscription identifies where an inbound message arrived. The envelope
// holds it as a non-owning back-reference; the transport layer owns the
// subscription and binds its publisher.
type Subscription struct {
	Subject   string
	Publisher Publisher
}

// emptyPayload is shared by every message without a payload, so empty
// messages cost no allocation.
var emptyPayload = make([]byte, 0)

// maxStringData bounds how much payload String renders.
const maxStringData = 32

// Message bundles subject, reply subject, payload and header block. It is the
// unit exchanged between application code and the transport layer. The
// payload is owned exclusively by the message; see SetData and AssignData for
// the two ownership modes. Not safe for concurrent use.
type Message struct {
	Subject string
	Reply   string

	data   []byte
	header *Header

	// Sub is the arrival subscription, set by the transport layer on inbound
	// messages. Respond resolves the reply publisher through it.
	Sub *Subscription
}

// NewMessage builds an outbound message from application fields. The subject
// must be non-blank. data is copied in; header is referenced as-is and may be
// nil. The payload is never nil after construction.
func NewMessage(subject, reply string, header *Header, data []byte) (*Message, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("%w: subject required", ErrInvalidArgument)
	}
	m := &Message{Subject: subject, Reply: reply, header: header}
	m.SetData(data)
	if m.data == nil {
		m.data = emptyPayload
	}
	return m, nil
}

// DecodeMessage reconstructs an inbound message from a parsed frame. The
// transport computes the header/payload split and passes it as headerLen: the
// first headerLen bytes of buf are decoded as a header block, and the region
// from headerLen to totalLen is copied into a fresh payload. Subject and
// reply come from the frame as-is, trusted to be well-formed by the parser.
func DecodeMessage(subject, reply string, buf []byte, headerLen, totalLen int) (*Message, error) {
	if totalLen > len(buf) {
		return nil, fmt.Errorf("%w: total length exceeds buffer length", ErrInvalidArgument)
	}
	m := &Message{Subject: subject, Reply: reply}
	if headerLen > 0 {
		h, err := DecodeHeader(buf, headerLen)
		if err != nil {
			return nil, err
		}
		m.header = h
	}
	if totalLen > headerLen {
		m.data = append(make([]byte, 0, totalLen-headerLen), buf[headerLen:totalLen]...)
	} else {
		m.data = emptyPayload
	}
	return m, nil
}

// Data returns the current payload. The slice may be the shared empty
// payload.
func (m *Message) Data() []byte { return m.data }

// SetData copies d into a fresh buffer owned by the message; the caller keeps
// its slice and may reuse it freely. A nil d clears the payload; an empty d
// installs the shared empty payload.
func (m *Message) SetData(d []byte) {
	switch {
	case d == nil:
		m.data = nil
	case len(d) == 0:
		m.data = emptyPayload
	default:
		m.data = append(make([]byte, 0, len(d)), d...)
	}
}

// AssignData installs d as the payload without copying. Ownership moves to
// the message: the caller must not touch d afterward. This is a performance
// escape hatch; nothing detects misuse.
func (m *Message) AssignData(d []byte) { m.data = d }

// Headers returns the message's header block, allocating an empty one on
// first call. The result is never nil.
func (m *Message) Headers() *Header {
	if m.header == nil {
		m.header = NewHeader()
	}
	return m.header
}

// HasHeaders reports whether the message carries any header entries, without
// allocating a block.
func (m *Message) HasHeaders() bool { return m.header != nil && m.header.Len() > 0 }

// SetHeaders replaces the header block wholesale. h may be nil.
func (m *Message) SetHeaders(h *Header) { m.header = h }

// Respond publishes data to the message's reply subject through the arrival
// subscription. It fails with ErrNoReplySubject when no reply subject is set,
// and with ErrMsgNotBound when the subscription or its publisher is missing.
func (m *Message) Respond(data []byte) error {
	if m.Reply == "" {
		return ErrNoReplySubject
	}
	if m.Sub == nil || m.Sub.Publisher == nil {
		return ErrMsgNotBound
	}
	return m.Sub.Publisher.Publish(m.Reply, data)
}

// String renders a bounded diagnostic preview: subject, reply ("null" when
// absent), headers when present, and at most the first 32 payload bytes
// followed by a count of the rest.
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString("Message{subject=")
	b.WriteString(m.Subject)
	b.WriteString(", reply=")
	if m.Reply == "" {
		b.WriteString("null")
	} else {
		b.WriteString(m.Reply)
	}
	if m.HasHeaders() {
		b.WriteString(", headers=[")
		for i, k := range m.header.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(m.header.vals[k])
		}
		b.WriteByte(']')
	}
	b.WriteString(", data=")
	if len(m.data) <= maxStringData {
		b.Write(m.data)
	} else {
		b.Write(m.data[:maxStringData])
		fmt.Fprintf(&b, " (+%d bytes)", len(m.data)-maxStringData)
	}
	b.WriteByte('}')
	return b.String()
}
