package main

import (
	"fmt"

	"github.com/lixenwraith/hostpatch/config"
	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/patch"
	"github.com/lixenwraith/hostpatch/registry"
	"github.com/lixenwraith/hostpatch/service"
	"github.com/lixenwraith/hostpatch/status"
)

func init() {
	registry.RegisterService("host", func() any { return newHostService() })
}

// hostService owns the simulated host: client, integrated server, step and
// frame loop, with the patch suite installed as their hooks
type hostService struct {
	suite  *patch.Suite
	client *host.Client
	server *host.Server
	loop   *host.Loop
}

func newHostService() *hostService {
	return &hostService{}
}

var _ service.Service = (*hostService)(nil)

func (s *hostService) Name() string           { return "host" }
func (s *hostService) Dependencies() []string { return nil }

// Init builds everything from a config.Config arg (default: config.Default)
// and loads the overworld on both sides. A *status.Registry arg receives
// the metrics
func (s *hostService) Init(args ...any) error {
	cfg := config.Default()
	reg := status.Default()
	for _, arg := range args {
		switch v := arg.(type) {
		case config.Config:
			cfg = v
		case *status.Registry:
			reg = v
		}
	}

	clock := host.NewPausableClock(host.MonotonicTimeProvider{})

	opts := cfg.Options()
	opts.Registry = reg
	opts.Time = clock
	suite, err := patch.New(opts)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}

	build := cfg.HostBuild()
	s.suite = suite
	s.client = host.NewClient(host.ClientConfig{
		Build:          build,
		RenderDistance: cfg.RenderDistance,
		Logger:         core.Logger(),
	}, suite)
	s.server = host.NewServer(build, suite, s.client)
	s.loop = host.NewLoop(s.client, clock, cfg.StepInterval(), cfg.FrameInterval(), reg)

	s.server.Load(0)
	s.client.LoadWorld(0)
	return nil
}

func (s *hostService) Start() error {
	if s.loop == nil {
		return fmt.Errorf("host: not initialized")
	}
	s.server.Start()
	s.loop.Start()
	return nil
}

func (s *hostService) Stop() error {
	if s.loop != nil {
		s.loop.Stop()
	}
	if s.server != nil {
		s.server.Stop()
	}
	return nil
}

// Contribute implements service.ResourceContributor
func (s *hostService) Contribute(publish service.ResourcePublisher) {
	if s.suite == nil {
		return
	}
	publish(s.suite)
	publish(s.client)
	publish(s.server)
	publish(s.loop)
}

// Ambience is the audio level source. Full light until initialized
func (s *hostService) Ambience() float64 {
	if s.suite == nil {
		return 1
	}
	return s.suite.Ambience()
}
