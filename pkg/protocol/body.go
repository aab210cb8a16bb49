package protocol

import (
	"fmt"

	"pubwire/pkg/protocol/codec"
)

// HdrContentType is the header key carrying the payload encoding used by the
// typed-body helpers.
const HdrContentType = "Content-Type"

// MarshalBody encodes v with the codec registered for contentType, installs
// the encoded bytes as the payload, and records contentType in the header
// block. The encoded buffer is owned by the message from then on.
func (m *Message) MarshalBody(reg *codec.Registry, contentType string, v any) error {
	c := reg.Get(contentType)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrNoCodec, contentType)
	}
	b, err := c.Marshal(v)
	if err != nil {
		return err
	}
	m.AssignData(b)
	m.Headers().Set(HdrContentType, contentType)
	return nil
}

// UnmarshalBody decodes the payload into v using the codec named by the
// message's Content-Type header.
func (m *Message) UnmarshalBody(reg *codec.Registry, v any) error {
	if !m.HasHeaders() {
		return fmt.Errorf("%w: message has no content type", ErrNoCodec)
	}
	ct := m.header.Get(HdrContentType)
	c := reg.Get(ct)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrNoCodec, ct)
	}
	return c.Unmarshal(m.data, v)
}
