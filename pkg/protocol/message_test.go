package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type capturePublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *capturePublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = append([]byte(nil), data...)
	return p.err
}

func TestNewMessageSubjectValidation(t *testing.T) {
	for _, s := range []string{"", "   ", "\t"} {
		if _, err := NewMessage(s, "", nil, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("subject %q: err = %v", s, err)
		}
	}
	m, err := NewMessage("a", "", nil, nil)
	if err != nil {
		t.Fatalf("subject a: %v", err)
	}
	if m.Data() == nil {
		t.Fatal("payload nil after construction")
	}
}

func TestSetDataDeepCopy(t *testing.T) {
	src := []byte("abc")
	m, err := NewMessage("s", "", nil, src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 'X'
	if m.Data()[0] == 'X' {
		t.Fatal("payload aliases caller buffer")
	}
}

func TestAssignDataAliases(t *testing.T) {
	m, _ := NewMessage("s", "", nil, nil)
	buf := []byte("abc")
	m.AssignData(buf)
	buf[0] = 'X'
	if m.Data()[0] != 'X' {
		t.Fatal("AssignData copied the buffer")
	}
}

func TestSetDataNilAndEmpty(t *testing.T) {
	m, _ := NewMessage("s", "", nil, []byte("x"))
	m.SetData(nil)
	if m.Data() != nil {
		t.Fatal("nil set did not clear payload")
	}
	m.SetData([]byte{})
	if m.Data() == nil || len(m.Data()) != 0 {
		t.Fatalf("empty set: %v", m.Data())
	}
}

func TestDecodeMessage(t *testing.T) {
	hdr := []byte("NATS/1.0\r\nfoo:bar\r\n\r\n")
	frame := append(append([]byte(nil), hdr...), []byte("payload")...)
	m, err := DecodeMessage("sub", "rep", frame, len(hdr), len(frame))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Subject != "sub" || m.Reply != "rep" {
		t.Fatalf("subject/reply = %q/%q", m.Subject, m.Reply)
	}
	if m.Headers().Get("foo") != "bar" {
		t.Fatal("header lost")
	}
	if !bytes.Equal(m.Data(), []byte("payload")) {
		t.Fatalf("payload = %q", m.Data())
	}
	frame[len(hdr)] = 'X'
	if m.Data()[0] == 'X' {
		t.Fatal("payload aliases frame buffer")
	}
}

func TestDecodeMessageNoHeader(t *testing.T) {
	frame := []byte("data")
	m, err := DecodeMessage("sub", "", frame, 0, len(frame))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.HasHeaders() {
		t.Fatal("headers present without header region")
	}
	if !bytes.Equal(m.Data(), frame) {
		t.Fatalf("payload = %q", m.Data())
	}
}

func TestDecodeMessageEmptyPayload(t *testing.T) {
	m, err := DecodeMessage("sub", "", nil, 0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Data() == nil || len(m.Data()) != 0 {
		t.Fatal("want shared empty payload")
	}
}

func TestDecodeMessageBadHeader(t *testing.T) {
	frame := []byte("XATS/1.0\r\nfoo:bar\r\n\r\npayload")
	if _, err := DecodeMessage("sub", "", frame, 21, len(frame)); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("err = %v", err)
	}
}

func TestRespond(t *testing.T) {
	m, err := NewMessage("svc.req", "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Sub = &Subscription{Subject: "svc.req", Publisher: &capturePublisher{}}
	if err := m.Respond([]byte("x")); !errors.Is(err, ErrNoReplySubject) {
		t.Fatalf("no reply subject: err = %v", err)
	}

	m.Reply = "svc.rep"
	m.Sub = nil
	if err := m.Respond([]byte("x")); !errors.Is(err, ErrMsgNotBound) {
		t.Fatalf("nil subscription: err = %v", err)
	}
	m.Sub = &Subscription{Subject: "svc.req"}
	if err := m.Respond([]byte("x")); !errors.Is(err, ErrMsgNotBound) {
		t.Fatalf("unbound publisher: err = %v", err)
	}

	pub := &capturePublisher{}
	m.Sub.Publisher = pub
	if err := m.Respond([]byte("pong")); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if pub.subject != "svc.rep" || !bytes.Equal(pub.data, []byte("pong")) {
		t.Fatalf("published %q to %q", pub.data, pub.subject)
	}
}

func TestRespondPropagatesPublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("link down")}
	m, _ := NewMessage("svc.req", "svc.rep", nil, nil)
	m.Sub = &Subscription{Subject: "svc.req", Publisher: pub}
	if err := m.Respond(nil); err == nil || err.Error() != "link down" {
		t.Fatalf("err = %v", err)
	}
}

func TestHeadersLazyCreate(t *testing.T) {
	m, _ := NewMessage("s", "", nil, nil)
	h := m.Headers()
	if h == nil {
		t.Fatal("nil headers")
	}
	h.Set("a", "1")
	if m.Headers().Get("a") != "1" {
		t.Fatal("accessor returned a different block")
	}
	repl := NewHeader()
	m.SetHeaders(repl)
	if m.Headers() != repl {
		t.Fatal("SetHeaders did not replace the block")
	}
}

func TestStringBounded(t *testing.T) {
	m, _ := NewMessage("s", "", nil, bytes.Repeat([]byte("a"), 100))
	s := m.String()
	if strings.Contains(s, strings.Repeat("a", 33)) {
		t.Fatal("payload not truncated")
	}
	if !strings.Contains(s, "+68 bytes") {
		t.Fatalf("missing remainder count: %s", s)
	}
	if !strings.Contains(s, "reply=null") {
		t.Fatalf("missing null reply token: %s", s)
	}

	h := NewHeader()
	h.Set("k", "v")
	m2, _ := NewMessage("s", "r", h, []byte("short"))
	s2 := m2.String()
	if !strings.Contains(s2, "k=v") || !strings.Contains(s2, "reply=r") || !strings.Contains(s2, "short") {
		t.Fatalf("preview = %s", s2)
	}
}
