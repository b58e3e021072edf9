package host

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/core"
)

// blockChange is a place (light > 0) or break (light == 0) request
type blockChange struct {
	pos   BlockPos
	light int
}

// Server is the integrated server: it owns an authoritative world on its own
// goroutine and forwards block changes to the client as packets
type Server struct {
	build  Build
	hooks  Hooks
	client *Client
	logger *slog.Logger

	world World
	reqs  chan blockChange

	changes atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewServer creates a server for the client's build. A nil client skips
// packet delivery
func NewServer(build Build, hooks Hooks, client *Client) *Server {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Server{
		build:    build,
		hooks:    hooks,
		client:   client,
		logger:   core.Logger(),
		reqs:     make(chan blockChange, 64),
		stopChan: make(chan struct{}),
	}
}

// Load creates the server world and fires WorldLoaded on the calling
// goroutine, which becomes the server goroutine
func (s *Server) Load(dimension int) World {
	s.world = newWorld(s.build, false, dimension)
	s.logger.Info("server world loaded", "build", s.build, "dimension", dimension)
	s.hooks.WorldLoaded(s.world)
	return s.world
}

// World returns the server world, nil before Load
func (s *Server) World() World { return s.world }

// Changes returns how many light-emitting block changes were processed
func (s *Server) Changes() int64 { return s.changes.Load() }

// Start loads the overworld and processes requests on a new goroutine
func (s *Server) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.serve)
	}
}

// Stop halts the server goroutine. Idempotent
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Server) serve() {
	defer s.wg.Done()
	if s.world == nil {
		s.Load(0)
	}
	for {
		select {
		case <-s.stopChan:
			return
		case req := <-s.reqs:
			s.Apply(req.pos, req.light)
		}
	}
}

// Place requests a light source at pos. Safe from any goroutine; returns
// false if the server is stopped or saturated
func (s *Server) Place(pos BlockPos, light int) bool {
	return s.request(blockChange{pos, max(0, min(light, MaxLight))})
}

// Break requests removal of the block at pos
func (s *Server) Break(pos BlockPos) bool {
	return s.request(blockChange{pos, 0})
}

func (s *Server) request(req blockChange) bool {
	if !s.running.Load() {
		return false
	}
	select {
	case s.reqs <- req:
		return true
	case <-s.stopChan:
		return false
	default:
		s.logger.Warn("server request dropped", "pos", req.pos)
		return false
	}
}

// Apply performs a block change on the calling goroutine, which must be the
// server goroutine (or a test standing in for it). The hook fires before
// the packet is posted, so the client may step before the packet lands
func (s *Server) Apply(pos BlockPos, light int) {
	if s.world == nil {
		return
	}
	old := s.world.SetBlock(pos, light)
	lv := light
	if light == 0 {
		lv = old
	}
	if lv > 0 {
		s.changes.Add(1)
		s.hooks.BlockChanged(s.world, pos, lv)
	}
	if s.client != nil {
		s.client.Post(func(c *Client) {
			if w := c.World(); w != nil {
				w.SetBlock(pos, light)
			}
		})
	}
}
