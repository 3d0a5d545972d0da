package cef

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/smzarrabimmp/cms/cmd/contextx"
	"github.com/smzarrabimmp/cms/logx"
)

const (
	CEFTimeFormat = "Jan 2 2006 15:04:05"

	cefVersion    = 0
	eventSeverity = 0

	// The CEF dictionary defines six custom string slots (cs1 through cs6).
	maxCustomExtensions = 6

	invalidCEFCustomExtension = "invalid-cef-custom-extension"
	failedToWriteLogMessage   = "failed-to-write-log-message"
)

type Vendor string
type Product string
type Version string
type Hostname string

type Logger struct {
	mu        sync.Mutex
	writer    io.Writer
	prefix    string
	hostname  string
	destPort  int
	errLogger logx.Logger
}

func NewLogger(writer io.Writer, vendor Vendor, product Product, version Version, hostname Hostname, destPort int, errLogger logx.Logger) *Logger {
	prefix := fmt.Sprintf("CEF:%d|%s|%s|%s",
		cefVersion,
		escapeHeader(string(vendor)),
		escapeHeader(string(product)),
		escapeHeader(string(version)),
	)

	return &Logger{
		writer:    writer,
		prefix:    prefix,
		hostname:  string(hostname),
		destPort:  destPort,
		errLogger: errLogger,
	}
}

func (l *Logger) Log(ctx context.Context, signature string, name string, args ...logx.SecurityData) {
	var (
		srcAddr net.IP
		srcPort int
	)

	if peerAddr, ok := contextx.PeerAddrFromContext(ctx); ok {
		switch addr := peerAddr.(type) {
		case *net.TCPAddr:
			srcAddr = addr.IP
			srcPort = addr.Port
		}
	}

	extension := []pair{
		{key: "dst", value: l.hostname},
		{key: "src", value: srcAddr.String()},
		{key: "dpt", value: strconv.FormatInt(int64(l.destPort), 10)},
		{key: "spt", value: strconv.FormatInt(int64(srcPort), 10)},
	}

	if rt, ok := contextx.ReceiptTimeFromContext(ctx); ok {
		extension = append(extension, pair{key: "rt", value: fmt.Sprintf("\"%s\"", rt.Format(CEFTimeFormat))})
	}

	customCount := 0
	csCounter := 1
	invalidFound := false

	for _, ce := range args {
		if ce.Key == "" || ce.Value == "" {
			if !invalidFound {
				l.errLogger.Error(invalidCEFCustomExtension, errors.New("the extension key and/or value is empty"))
				invalidFound = true
			}
			continue
		}

		if customCount == maxCustomExtensions {
			l.errLogger.Error(invalidCEFCustomExtension, errors.New("cannot provide more than 6 custom extensions"))
			break
		}

		// "msg" is a named field in the CEF dictionary and does not use up
		// a custom string slot.
		if ce.Key == "msg" {
			extension = append(extension, pair{key: "msg", value: ce.Value})
		} else {
			extension = append(extension,
				pair{key: fmt.Sprintf("cs%dLabel", csCounter), value: ce.Key},
				pair{key: fmt.Sprintf("cs%d", csCounter), value: ce.Value},
			)
			csCounter++
		}
		customCount++
	}

	line := fmt.Sprintf("%s|%s|%s|%d|%s",
		l.prefix,
		escapeHeader(signature),
		escapeHeader(name),
		eventSeverity,
		formatExtension(extension),
	)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := fmt.Fprintln(l.writer, line); err != nil {
		l.errLogger.Error(failedToWriteLogMessage, err)
	}
}

type pair struct {
	key   string
	value string
}

func formatExtension(extension []pair) string {
	parts := make([]string, len(extension))
	for i, p := range extension {
		parts[i] = p.key + "=" + escapeExtension(p.value)
	}

	return strings.Join(parts, " ")
}

var (
	headerEscaper    = strings.NewReplacer(`\`, `\\`, `|`, `\|`)
	extensionEscaper = strings.NewReplacer(`\`, `\\`, `=`, `\=`, "\n", `\n`, "\r", `\r`)
)

func escapeHeader(value string) string {
	return headerEscaper.Replace(value)
}

func escapeExtension(value string) string {
	return extensionEscaper.Replace(value)
}
