package host

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/status"
)

// Default step and frame rates of the host
const (
	DefaultStepInterval  = time.Second / 20
	DefaultFrameInterval = time.Second / 60
)

// Loop drives client steps on game time and frames on wall time, both on
// one goroutine. Pausing the clock stops steps; frames continue with a
// frozen partial-step fraction
type Loop struct {
	client *Client
	clock  *PausableClock

	stepInterval  time.Duration
	frameInterval time.Duration

	lastStep time.Time
	nextStep time.Time
	mu       sync.RWMutex

	onFrame func()

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statSteps  *atomic.Int64
	statFrames *atomic.Int64
}

// NewLoop creates a loop over client. Non-positive intervals use the
// defaults; a nil registry uses status.Default()
func NewLoop(client *Client, clock *PausableClock, step, frame time.Duration, reg *status.Registry) *Loop {
	if step <= 0 {
		step = DefaultStepInterval
	}
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if reg == nil {
		reg = status.Default()
	}
	now := clock.Now()
	return &Loop{
		client:        client,
		clock:         clock,
		stepInterval:  step,
		frameInterval: frame,
		lastStep:      now,
		nextStep:      now.Add(step),
		stopChan:      make(chan struct{}),
		statSteps:     reg.Counters.Get("host.steps"),
		statFrames:    reg.Counters.Get("host.frames"),
	}
}

// OnFrame sets a callback run on the loop goroutine after every frame
// Must be called before Start
func (l *Loop) OnFrame(fn func()) {
	l.onFrame = fn
}

// Clock returns the game clock
func (l *Loop) Clock() *PausableClock { return l.clock }

// StepInterval returns the game time between steps
func (l *Loop) StepInterval() time.Duration { return l.stepInterval }

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop goroutine. Idempotent
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

// Running reports whether the loop goroutine is active
func (l *Loop) Running() bool { return l.running.Load() }

// StepOnce runs a step immediately. Only while the loop is not running
func (l *Loop) StepOnce() {
	l.step(l.clock.Now())
}

// FrameOnce renders a frame immediately. Only while the loop is not running
func (l *Loop) FrameOnce() {
	l.frame()
}

// Partial returns how far game time is between the last step and the next,
// clamped to [0,1]
func (l *Loop) Partial() float64 {
	l.mu.RLock()
	last := l.lastStep
	l.mu.RUnlock()

	p := float64(l.clock.Now().Sub(last)) / float64(l.stepInterval)
	return max(0, min(1, p))
}

func (l *Loop) step(now time.Time) {
	l.client.Step()
	l.statSteps.Add(1)

	l.mu.Lock()
	l.lastStep = now
	l.nextStep = l.nextStep.Add(l.stepInterval)
	if now.Sub(l.nextStep) > l.stepInterval*2 {
		l.nextStep = now.Add(l.stepInterval)
	}
	l.mu.Unlock()
}

func (l *Loop) frame() {
	l.client.Frame(l.Partial())
	l.statFrames.Add(1)
	if l.onFrame != nil {
		l.onFrame()
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	l.mu.Lock()
	l.lastStep = l.clock.Now()
	l.nextStep = l.lastStep.Add(l.stepInterval)
	l.mu.Unlock()
	nextFrame := time.Now()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		default:
		}

		sleep := l.frameInterval
		if !l.clock.IsPaused() {
			gameNow := l.clock.Now()
			l.mu.RLock()
			deadline := l.nextStep
			l.mu.RUnlock()

			if !gameNow.Before(deadline) {
				l.step(gameNow)
				l.mu.RLock()
				deadline = l.nextStep
				l.mu.RUnlock()
			}
			sleep = deadline.Sub(l.clock.Now())
		}

		wallNow := time.Now()
		if !wallNow.Before(nextFrame) {
			l.frame()
			nextFrame = nextFrame.Add(l.frameInterval)
			if wallNow.Sub(nextFrame) > l.frameInterval*2 {
				nextFrame = wallNow.Add(l.frameInterval)
			}
		}
		sleep = min(sleep, time.Until(nextFrame))

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-l.stopChan:
				return
			}
		}
	}
}
