package host

import (
	"testing"
	"time"

	"github.com/lixenwraith/hostpatch/status"
)

func TestLoopManualStepAndFrame(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(1000, 0))
	clock := NewPausableClock(mock)
	reg := status.NewRegistry()
	c := NewClient(ClientConfig{}, nil)
	l := NewLoop(c, clock, 50*time.Millisecond, 16*time.Millisecond, reg)

	frames := 0
	l.OnFrame(func() { frames++ })

	l.StepOnce()
	mock.Advance(25 * time.Millisecond)
	if got := l.Partial(); got != 0.5 {
		t.Errorf("Expected partial 0.5, got %v", got)
	}

	clock.Pause()
	mock.Advance(time.Second)
	if got := l.Partial(); got != 0.5 {
		t.Errorf("Expected partial frozen at 0.5 while paused, got %v", got)
	}
	l.FrameOnce()

	clock.Resume()
	mock.Advance(time.Second)
	if got := l.Partial(); got != 1 {
		t.Errorf("Expected partial clamped to 1, got %v", got)
	}

	if got := reg.Counters.Get("host.steps").Load(); got != 1 {
		t.Errorf("Expected 1 step, got %d", got)
	}
	if got := reg.Counters.Get("host.frames").Load(); got != 1 {
		t.Errorf("Expected 1 frame, got %d", got)
	}
	if frames != 1 {
		t.Errorf("Expected OnFrame once, got %d", frames)
	}
}

func TestLoopDefaults(t *testing.T) {
	l := NewLoop(NewClient(ClientConfig{}, nil), nil, 0, 0, status.NewRegistry())
	if l.StepInterval() != DefaultStepInterval {
		t.Errorf("Expected default step interval, got %v", l.StepInterval())
	}
	if l.Clock() == nil {
		t.Error("Expected a default clock")
	}
}

func TestLoopRunsStepsAndFrames(t *testing.T) {
	reg := status.NewRegistry()
	c := NewClient(ClientConfig{}, nil)
	l := NewLoop(c, nil, 2*time.Millisecond, 2*time.Millisecond, reg)
	steps := reg.Counters.Get("host.steps")
	frames := reg.Counters.Get("host.frames")

	l.Start()
	l.Start()
	if !l.Running() {
		t.Fatal("Expected loop running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for steps.Load() < 3 || frames.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("timeout: steps=%d frames=%d", steps.Load(), frames.Load())
		}
		time.Sleep(time.Millisecond)
	}

	l.Stop()
	l.Stop()
	if l.Running() {
		t.Error("Expected loop stopped")
	}

	after := steps.Load()
	time.Sleep(10 * time.Millisecond)
	if steps.Load() != after {
		t.Error("Expected no steps after Stop")
	}
}

func TestLoopPausedStopsSteps(t *testing.T) {
	reg := status.NewRegistry()
	clock := NewPausableClock(nil)
	clock.Pause()
	l := NewLoop(NewClient(ClientConfig{}, nil), clock, time.Millisecond, time.Millisecond, reg)
	frames := reg.Counters.Get("host.frames")

	l.Start()
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for frames while paused")
		}
		time.Sleep(time.Millisecond)
	}
	l.Stop()

	if got := reg.Counters.Get("host.steps").Load(); got != 0 {
		t.Errorf("Expected no steps while paused, got %d", got)
	}
}
