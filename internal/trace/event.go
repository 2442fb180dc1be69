package trace

import "time"

// Kind says whether an event opens a span, closes it or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole fmt run.
	ScopeDriver Scope = iota + 1
	// ScopeFile covers one build file from load to write.
	ScopeFile
	// ScopePass covers a stage inside a file (parse, reorder).
	ScopePass
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeFile:   "file",
	ScopePass:   "pass",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record.
type Event struct {
	Time   time.Time
	Seq    uint64 // монотонный номер, общий для процесса
	Kind   Kind
	Scope  Scope
	Span   uint64
	Parent uint64 // 0 у корневого спана
	File   string // build file the event belongs to; empty for driver events
	Name   string
	Detail string
	Attrs  map[string]string
}
