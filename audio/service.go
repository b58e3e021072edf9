package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/registry"
	"github.com/lixenwraith/hostpatch/service"
	"github.com/lixenwraith/hostpatch/status"
)

func init() {
	registry.RegisterService("audio", func() any { return NewService() })
}

// levelSource is anything exposing the interpolated darkening factor
type levelSource interface {
	Ambience() float64
}

// Service wraps Engine as a service.Service
// Handles graceful degradation when no audio backend is available
type Service struct {
	engine   *Engine
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *Service {
	return &Service{}
}

var _ service.Service = (*Service)(nil)

// Name implements service.Service
func (s *Service) Name() string { return "audio" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return []string{"host"} }

// Init implements service.Service. Recognized args, in any order:
//   - Config: audio settings (default: DefaultConfig)
//   - a value with Ambience() float64, or a LevelFunc: the gain source
//   - *status.Registry: where the gain gauge is published
//
// A missing source or a bad config disables the service without failing
// startup
func (s *Service) Init(args ...any) error {
	cfg := DefaultConfig()
	var level LevelFunc
	var reg *status.Registry

	for _, arg := range args {
		switch v := arg.(type) {
		case Config:
			cfg = v
		case LevelFunc:
			level = v
		case levelSource:
			level = v.Ambience
		case *status.Registry:
			reg = v
		}
	}

	engine, err := NewEngine(cfg, level, reg)
	if err != nil {
		core.Logger().Warn("audio disabled", "error", err)
		s.disabled.Store(true)
		return nil
	}
	s.engine = engine
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.engine == nil {
		return nil
	}
	if err := s.engine.Start(); err != nil {
		s.disabled.Store(true)
		s.engine = nil
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.engine != nil {
		s.engine.Stop()
	}
	return nil
}

// Contribute implements service.ResourceContributor
func (s *Service) Contribute(publish service.ResourcePublisher) {
	if e := s.Engine(); e != nil {
		publish(e)
	}
}

// IsDisabled returns true if audio is unavailable
func (s *Service) IsDisabled() bool { return s.disabled.Load() }

// Engine returns the underlying Engine (nil if disabled)
func (s *Service) Engine() *Engine {
	if s.disabled.Load() {
		return nil
	}
	return s.engine
}
