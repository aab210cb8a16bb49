package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pubwire/pkg/config"
	"pubwire/pkg/protocol"
	"pubwire/pkg/protocol/codec"
)

func main() {
	cfgPath := flag.String("config", "", "optional config file")
	outDir := flag.String("out", "", "output directory for binary frames (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	dir := cfg.Frames.OutDir
	if *outDir != "" {
		dir = *outDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal(err)
	}

	reg := codec.NewRegistry()
	cb, err := codec.CBOR()
	if err != nil {
		log.Fatal(err)
	}
	reg.Register(cb)

	// 1) Plain payload, no header block
	m, err := protocol.NewMessage(cfg.Frames.Subject, "", nil, []byte("hello"))
	if err != nil {
		log.Fatal(err)
	}
	writeFrame(dir, "frame_plain.bin", m)

	// 2) Headered payload
	h := protocol.NewHeader()
	h.Set("Msg-Id", "42")
	h.Set("Trace", "on")
	m2, err := protocol.NewMessage(cfg.Frames.Subject, cfg.Frames.Reply, h, []byte("payload"))
	if err != nil {
		log.Fatal(err)
	}
	writeFrame(dir, "frame_headers.bin", m2)

	// 3) Typed JSON body
	m3, err := protocol.NewMessage(cfg.Frames.Subject, "", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := m3.MarshalBody(reg, codec.ContentJSON, map[string]any{"ok": true, "n": 42}); err != nil {
		log.Fatal(err)
	}
	writeFrame(dir, "frame_body_json.bin", m3)

	// 4) Typed CBOR body
	m4, err := protocol.NewMessage(cfg.Frames.Subject, "", nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := m4.MarshalBody(reg, codec.ContentCBOR, map[string]any{"k": "v"}); err != nil {
		log.Fatal(err)
	}
	writeFrame(dir, "frame_body_cbor.bin", m4)

	// 5) Headers only, empty payload
	h5 := protocol.NewHeader()
	h5.Set("Ping", "1")
	m5, err := protocol.NewMessage(cfg.Frames.Subject, "", h5, nil)
	if err != nil {
		log.Fatal(err)
	}
	writeFrame(dir, "frame_empty_payload.bin", m5)

	fmt.Println("Generated frames in", dir)
}

// writeFrame writes header block + payload as one file and prints the header
// length the inspector needs to split the frame back apart.
func writeFrame(dir, name string, m *protocol.Message) {
	hb := m.Headers().Encode()
	frame := append(append([]byte(nil), hb...), m.Data()...)
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, frame, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%-24s hdrlen=%-3d total=%-4d head: %s\n", name, len(hb), len(frame), shortHex(frame, 48))
}

func shortHex(b []byte, n int) string {
	if len(b) == 0 {
		return ""
	}
	if n > len(b) {
		n = len(b)
	}
	enc := hex.EncodeToString(b[:n])
	if len(b) > n {
		enc += ".."
	}
	var out []string
	for i := 0; i < len(enc); i += 4 {
		j := i + 4
		if j > len(enc) {
			j = len(enc)
		}
		out = append(out, enc[i:j])
	}
	return strings.Join(out, " ")
}
