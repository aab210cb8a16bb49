// Package protocol implements the wire representation of a pub/sub message:
// the Message envelope exchanged between application and transport, and the
// text header block attached to it.
//
// A header block is serialized in an HTTP-like sub-format:
//
//	NATS/1.0\r\n
//	key1:value1\r\n
//	key2:value2\r\n
//	\r\n
//
// Values are UTF-8, the key/value separator is the first ':' on a line, and
// no escaping of ':' or CRLF inside keys or values is supported.
//
// Neither Header nor Message is safe for concurrent use; callers that share
// an instance across goroutines must synchronize externally.
package protocol

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	hdrPreamble = "NATS/1.0\r\n"
	crlf        = "\r\n"

	// Smallest structurally complete block: preamble + terminating blank
	// line. Anything shorter cannot carry the trailing CRLF CRLF.
	minHeaderLen = len(hdrPreamble) + len(crlf)
)

// Header is an ordered key/value block attached to a Message. Keys are unique
// and non-empty; assigning an existing key replaces the value but keeps the
// key's original position, so re-encoding unchanged data is byte-stable.
//
// The encoded form is memoized: Encode reuses its previous result until a
// mutation invalidates it.
type Header struct {
	keys  []string
	vals  map[string]string
	cache []byte // encoded block; nil when dirty or never encoded
}

// NewHeader returns an empty header block.
func NewHeader() *Header {
	return &Header{vals: make(map[string]string)}
}

// Len returns the number of entries.
func (h *Header) Len() int { return len(h.keys) }

// Get returns the value for key, or "" if absent. Lookup is case-sensitive.
func (h *Header) Get(key string) string { return h.vals[key] }

// Has reports whether key is present.
func (h *Header) Has(key string) bool { _, ok := h.vals[key]; return ok }

// Keys returns the keys in insertion order. The slice is a copy.
func (h *Header) Keys() []string { return append([]string(nil), h.keys...) }

// Set assigns value to key. An existing key keeps its position; only the
// value changes. Setting an empty key is a no-op, since the wire format
// cannot represent one. Any assignment drops the cached encoding.
func (h *Header) Set(key, value string) {
	if key == "" {
		return
	}
	if h.vals == nil {
		h.vals = make(map[string]string)
	}
	if _, ok := h.vals[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.vals[key] = value
	h.cache = nil
}

// Del removes key if present and drops the cached encoding.
func (h *Header) Del(key string) {
	if _, ok := h.vals[key]; !ok {
		return
	}
	delete(h.vals, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
	h.cache = nil
}

// Encode returns the serialized block, or nil for an empty header so the
// caller can omit the header region from the wire entirely. The result is
// memoized and must not be modified: two Encode calls with no mutation in
// between return the same slice.
func (h *Header) Encode() []byte {
	if len(h.keys) == 0 {
		return nil
	}
	if h.cache != nil {
		return h.cache
	}
	var b strings.Builder
	b.WriteString(hdrPreamble)
	for _, k := range h.keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(h.vals[k])
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	h.cache = []byte(b.String())
	return h.cache
}

// DecodeHeader parses the first byteCount bytes of buf as an encoded header
// block and returns a fresh Header. Caller-side mistakes (bad count, nil
// buffer, count beyond the buffer) surface as ErrInvalidArgument; structural
// violations of the wire format surface as ErrBadHeader. On error nothing
// partial is returned. The decoded header starts with no cached encoding.
func DecodeHeader(buf []byte, byteCount int) (*Header, error) {
	if byteCount < 1 {
		return nil, fmt.Errorf("%w: invalid byte count", ErrInvalidArgument)
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if byteCount > len(buf) {
		return nil, fmt.Errorf("%w: byte count exceeds buffer length", ErrInvalidArgument)
	}
	if byteCount < minHeaderLen {
		return nil, fmt.Errorf("%w: too short", ErrBadHeader)
	}
	data := buf[:byteCount]
	if !bytes.HasSuffix(data, []byte(crlf+crlf)) {
		return nil, fmt.Errorf("%w: missing terminating blank line", ErrBadHeader)
	}
	if !bytes.HasPrefix(data, []byte(hdrPreamble)) {
		return nil, fmt.Errorf("%w: bad preamble", ErrBadHeader)
	}

	h := NewHeader()
	fields := 0
	body := string(data[len(hdrPreamble) : byteCount-len(crlf)])
	for _, line := range strings.Split(body, crlf) {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("%w: field missing key or value", ErrBadHeader)
		}
		h.Set(key, value)
		fields++
	}
	if fields == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrBadHeader)
	}
	return h, nil
}
