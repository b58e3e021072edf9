package main

import (
	"testing"
	"time"

	"github.com/lixenwraith/hostpatch/config"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/status"
)

func TestHostServiceLifecycle(t *testing.T) {
	s := newHostService()
	if got := s.Ambience(); got != 1 {
		t.Errorf("Ambience before Init = %v, want 1", got)
	}
	if err := s.Start(); err == nil {
		t.Error("Start before Init should fail")
	}

	cfg := config.Default()
	cfg.Build = string(host.BuildObfuscated)
	cfg.StepRate = 200
	reg := status.NewRegistry()
	if err := s.Init(cfg, reg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if s.client.World() == nil || s.server.World() == nil {
		t.Fatal("worlds not loaded")
	}
	if s.client.Build() != host.BuildObfuscated {
		t.Errorf("build = %v", s.client.Build())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for reg.Counters.Get("host.steps").Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if n := reg.Counters.Get("host.steps").Load(); n < 3 {
		t.Errorf("steps = %d, want >= 3", n)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestNewAppWiresServices(t *testing.T) {
	reg := status.NewRegistry()
	a, err := newApp(config.Default(), reg)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.hub.StopAll()

	if a.suite == nil || a.client == nil || a.server == nil || a.loop == nil {
		t.Fatalf("missing host resources: %+v", a)
	}
	if a.engine == nil {
		t.Fatal("audio engine not contributed")
	}
	if !a.engine.IsMuted() {
		t.Error("audio should start muted by default")
	}
	names := a.hub.Names()
	if len(names) != 2 || names[0] != "audio" || names[1] != "host" {
		t.Errorf("services = %v", names)
	}

	// Surface at noon: full light
	a.loop.StepOnce()
	if got := a.suite.Ambience(); got != 1 {
		t.Errorf("Ambience = %v, want 1", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default flags produce invalid config: %v", err)
	}
	if cfg.HostBuild() != host.BuildNamed {
		t.Errorf("build = %v", cfg.HostBuild())
	}
}
