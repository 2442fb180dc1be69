package pipeline

import "time"

// Stage is the step a file is in. Stages run in declaration order; a
// cached file jumps from load straight to a finished write.
type Stage string

const (
	StageLoad    Stage = "load"    // чтение и проверка кэша
	StageParse   Stage = "parse"   // лексер и парсер
	StageReorder Stage = "reorder" // сортировка deps
	StageWrite   Stage = "write"   // запись, stdout или только проверка
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one progress update. An empty File means the whole run.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Final reports whether no more events follow for the file: it failed at
// some stage or finished writing.
func (e Event) Final() bool {
	return e.Status == StatusError || (e.Status == StatusDone && e.Stage == StageWrite)
}

// ProgressSink consumes progress events. Implementations must be safe for
// use from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit is a nil-safe OnEvent.
func Emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}

// EmitQueued marks every file as queued.
func EmitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		Emit(sink, Event{File: f, Status: StatusQueued})
	}
}
