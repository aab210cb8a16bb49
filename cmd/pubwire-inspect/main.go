package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"pubwire/pkg/config"
	"pubwire/pkg/observability"
	"pubwire/pkg/protocol"
)

func main() {
	cfgPath := flag.String("config", "", "optional config file")
	hdrLen := flag.Int("hdrlen", 0, "header byte length within the frame (0 = no header block)")
	subject := flag.String("subject", "inspect.in", "subject to stamp on the decoded message")
	reply := flag.String("reply", "", "reply subject to stamp on the decoded message")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: pubwire-inspect [flags] <frame-file>")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	buf, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal("read frame", zap.Error(err))
	}
	m, err := protocol.DecodeMessage(*subject, *reply, buf, *hdrLen, len(buf))
	if err != nil {
		logger.Fatal("decode frame", zap.Error(err))
	}

	if m.HasHeaders() {
		for _, k := range m.Headers().Keys() {
			logger.Info("header", zap.String("key", k), zap.String("value", m.Headers().Get(k)))
		}
	}
	logger.Info("message",
		zap.String("app", cfg.AppName),
		zap.String("preview", m.String()),
		zap.Int("header_bytes", *hdrLen),
		zap.Int("payload_bytes", len(m.Data())),
	)
}
