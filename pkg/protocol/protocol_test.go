package protocol

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yesoreyeram/agentweave/pkg/types"
)

// recordingSink records every frame it receives. Safe for concurrent use,
// since Manager notifies sinks from their own goroutines.
type recordingSink struct {
	mu     sync.Mutex
	frames []Frame
	wg     *sync.WaitGroup
}

func newRecordingSink(wg *sync.WaitGroup) *recordingSink {
	return &recordingSink{wg: wg}
}

func (s *recordingSink) Emit(ctx context.Context, frame Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
	if s.wg != nil {
		s.wg.Done()
	}
}

func (s *recordingSink) Frames() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Frame(nil), s.frames...)
}

func TestManagerBroadcastsToAllSinks(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	a := newRecordingSink(&wg)
	b := newRecordingSink(&wg)

	m := NewManager()
	m.Register(a)
	m.Register(b)
	if m.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", m.Count())
	}

	EmitConsole(context.Background(), m, "evt-1", KindInfo, "hello", nil)

	waitOrTimeout(t, &wg, time.Second)

	if len(a.Frames()) != 1 || len(b.Frames()) != 1 {
		t.Fatalf("expected exactly one frame per sink, got a=%d b=%d", len(a.Frames()), len(b.Frames()))
	}
}

func TestManagerSurvivesPanickingSink(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ok := newRecordingSink(&wg)

	m := NewManager()
	m.Register(panicSink{})
	m.Register(ok)

	EmitConsole(context.Background(), m, "evt-2", KindError, "boom", nil)

	waitOrTimeout(t, &wg, time.Second)
	if len(ok.Frames()) != 1 {
		t.Fatalf("expected the surviving sink to still receive the frame")
	}
}

type panicSink struct{}

func (panicSink) Emit(ctx context.Context, frame Frame) { panic("simulated sink failure") }

func TestEmitWorkflowOutputShape(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	sink := newRecordingSink(&wg)

	EmitWorkflowOutput(context.Background(), sink, "evt-3", "Summarize", "done")
	waitOrTimeout(t, &wg, time.Second)

	frames := sink.Frames()
	if len(frames) != 1 {
		t.Fatalf("expected one frame, got %d", len(frames))
	}
	out, ok := frames[0].Data.(WorkflowOutputEvent)
	if !ok {
		t.Fatalf("Data is %T, want WorkflowOutputEvent", frames[0].Data)
	}
	if out.Node != "Summarize" || out.Details != "done" {
		t.Fatalf("unexpected event contents: %+v", out)
	}
}

func TestCorrelatorResolvesAwait(t *testing.T) {
	c := NewCorrelator()
	sink := newRecordingSink(nil)

	want := types.Workflow{ID: "wf-1", Name: "demo"}
	go func() {
		// Give Await time to register its waiter.
		time.Sleep(10 * time.Millisecond)
		if !c.Resolve("req-1", WorkflowJSONReply{WorkflowID: "wf-1", Workflow: &want}) {
			t.Error("Resolve() returned false for a registered waiter")
		}
	}()

	reply, err := c.Await(context.Background(), sink, "req-1", RunWorkflowRequest{WorkflowID: "wf-1"})
	if err != nil {
		t.Fatalf("Await() error: %v", err)
	}
	if reply.WorkflowID != "wf-1" {
		t.Fatalf("reply.WorkflowID = %q, want wf-1", reply.WorkflowID)
	}

	frames := sink.Frames()
	if len(frames) != 1 || frames[0].Type != FrameRunWorkflow {
		t.Fatalf("expected a single run_workflow frame, got %+v", frames)
	}
}

func TestCorrelatorTimesOut(t *testing.T) {
	c := NewCorrelator()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Await(ctx, NoOpSink{}, "req-timeout", RunWorkflowRequest{WorkflowID: "wf-2"})
	if err == nil {
		t.Fatal("expected Await() to fail when nothing resolves the request")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestRemoteWorkflowProviderRoundTrip(t *testing.T) {
	c := NewCorrelator()
	sink := newRecordingSink(nil)
	p := &RemoteWorkflowProvider{Sink: sink, Correlator: c}

	go func() {
		// Play the client's part: answer the run_workflow frame once it
		// appears on the sink.
		deadline := time.After(time.Second)
		for {
			frames := sink.Frames()
			if len(frames) > 0 {
				c.Resolve(frames[0].RequestID, WorkflowJSONReply{
					WorkflowID: "wf-9",
					Workflow:   &types.Workflow{ID: "wf-9", Name: "remote"},
				})
				return
			}
			select {
			case <-deadline:
				return
			case <-time.After(time.Millisecond):
			}
		}
	}()

	wf, err := p.GetWorkflow(context.Background(), "wf-9")
	if err != nil {
		t.Fatalf("GetWorkflow() error: %v", err)
	}
	if wf.ID != "wf-9" {
		t.Fatalf("wf.ID = %q, want wf-9", wf.ID)
	}
}

func TestRemoteWorkflowProviderRejectsEmptyReply(t *testing.T) {
	c := NewCorrelator()
	sink := newRecordingSink(nil)
	p := &RemoteWorkflowProvider{Sink: sink, Correlator: c}

	go func() {
		deadline := time.After(time.Second)
		for {
			frames := sink.Frames()
			if len(frames) > 0 {
				c.Resolve(frames[0].RequestID, WorkflowJSONReply{WorkflowID: "wf-0"})
				return
			}
			select {
			case <-deadline:
				return
			case <-time.After(time.Millisecond):
			}
		}
	}()

	if _, err := p.GetWorkflow(context.Background(), "wf-0"); !errors.Is(err, types.ErrMalformedFrame) {
		t.Fatalf("GetWorkflow() error = %v, want ErrMalformedFrame", err)
	}
}

func TestCorrelatorResolveWithoutWaiterReturnsFalse(t *testing.T) {
	c := NewCorrelator()
	if c.Resolve("nobody-waiting", WorkflowJSONReply{WorkflowID: "x"}) {
		t.Fatal("Resolve() should return false when no waiter is registered")
	}
}

func TestDecodeFrame(t *testing.T) {
	f, err := DecodeFrame([]byte(`{"type":"run_workflow","requestId":"r1","data":{"workflowId":"wf-1"}}`))
	if err != nil {
		t.Fatalf("DecodeFrame() error: %v", err)
	}
	if f.Type != FrameRunWorkflow || f.RequestID != "r1" {
		t.Fatalf("decoded frame = %+v", f)
	}
}

func TestDecodeFrame_Malformed(t *testing.T) {
	for _, raw := range []string{`not json`, `{"data":{}}`, `[1,2,3]`} {
		if _, err := DecodeFrame([]byte(raw)); !errors.Is(err, types.ErrMalformedFrame) {
			t.Errorf("DecodeFrame(%q) error = %v, want ErrMalformedFrame", raw, err)
		}
	}
}

func TestEncodeFrame_StampsTimestamp(t *testing.T) {
	data, err := EncodeFrame(Frame{Type: FrameMessage})
	if err != nil {
		t.Fatalf("EncodeFrame() error: %v", err)
	}
	round, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error: %v", err)
	}
	if round.Timestamp.IsZero() {
		t.Error("EncodeFrame did not stamp a timestamp")
	}
}

func waitOrTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("timed out waiting for sinks to be notified")
	}
}
