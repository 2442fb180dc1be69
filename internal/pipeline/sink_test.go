package pipeline

import (
	"sync"
	"testing"
)

func TestRecorderConcurrent(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Emit(&r, Event{File: string(rune('a' + i)), Status: StatusDone})
		}()
	}
	wg.Wait()
	if got := len(r.Events()); got != 8 {
		t.Fatalf("got %d events", got)
	}
}

func TestChannelSinkAndNil(t *testing.T) {
	Emit(nil, Event{}) // не паникует

	ch := make(chan Event, 2)
	EmitQueued(ChannelSink{Ch: ch}, []string{"a/BUCK", "b/BUCK"})
	close(ch)
	var files []string
	for ev := range ch {
		if ev.Status != StatusQueued {
			t.Fatalf("status %v", ev.Status)
		}
		files = append(files, ev.File)
	}
	if len(files) != 2 || files[0] != "a/BUCK" {
		t.Fatalf("files %v", files)
	}
}

func TestEventFinal(t *testing.T) {
	cases := []struct {
		ev   Event
		want bool
	}{
		{Event{Stage: StageParse, Status: StatusDone}, false},
		{Event{Stage: StageWrite, Status: StatusWorking}, false},
		{Event{Stage: StageWrite, Status: StatusDone}, true},
		{Event{Stage: StageLoad, Status: StatusError}, true},
		{Event{Status: StatusQueued}, false},
	}
	for _, c := range cases {
		if got := c.ev.Final(); got != c.want {
			t.Fatalf("%s/%s: Final = %v, want %v", c.ev.Stage, c.ev.Status, got, c.want)
		}
	}
}
