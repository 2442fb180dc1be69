package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format is the encoding of trace output.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению файла
	FormatText                 // one indented line per event
	FormatNDJSON               // one JSON object per line
)

// ParseFormat converts a flag value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// DetectFormat resolves FormatAuto: .ndjson and .jsonl files get NDJSON,
// everything else text.
func DetectFormat(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

var processStart = time.Now()

// AppendEvent encodes ev in format and appends it, newline included, to dst.
func AppendEvent(dst []byte, ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(dst, ev)
	}
	return appendText(dst, ev)
}

type jsonEvent struct {
	Time   string            `json:"time"`
	Seq    uint64            `json:"seq"`
	Kind   string            `json:"kind"`
	Scope  string            `json:"scope"`
	Span   uint64            `json:"span"`
	Parent uint64            `json:"parent,omitempty"`
	File   string            `json:"file,omitempty"`
	Name   string            `json:"name"`
	Detail string            `json:"detail,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:   ev.Time.Format(time.RFC3339Nano),
		Seq:    ev.Seq,
		Kind:   ev.Kind.String(),
		Scope:  ev.Scope.String(),
		Span:   ev.Span,
		Parent: ev.Parent,
		File:   ev.File,
		Name:   ev.Name,
		Detail: ev.Detail,
		Attrs:  ev.Attrs,
	})
	if err != nil {
		return dst
	}
	return append(append(dst, data...), '\n')
}

// appendText renders
//
//	[   1.234ms]   + file:pkg/BUCK (detail) {k=v}
//
// with "+" for a span start, "-" for its end and "." for a point. Pass and
// point events of a file carry the file in brackets after the name.
func appendText(dst []byte, ev *Event) []byte {
	ms := float64(ev.Time.Sub(processStart).Microseconds()) / 1000
	dst = append(dst, '[')
	dst = append(dst, fmt.Sprintf("%9.3f", ms)...)
	dst = append(dst, "ms] "...)
	for range int(ev.Scope) - int(ScopeDriver) {
		dst = append(dst, "  "...)
	}

	switch ev.Kind {
	case KindSpanBegin:
		dst = append(dst, "+ "...)
	case KindSpanEnd:
		dst = append(dst, "- "...)
	default:
		dst = append(dst, ". "...)
	}
	dst = append(dst, ev.Scope.String()...)
	dst = append(dst, ':')
	dst = append(dst, ev.Name...)
	if ev.File != "" && ev.File != ev.Name {
		dst = append(dst, " ["...)
		dst = append(dst, ev.File...)
		dst = append(dst, ']')
	}
	if ev.Detail != "" {
		dst = append(dst, " ("...)
		dst = append(dst, ev.Detail...)
		dst = append(dst, ')')
	}
	if len(ev.Attrs) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Attrs)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(dst, k...)
			dst = append(dst, '=')
			dst = append(dst, ev.Attrs[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
