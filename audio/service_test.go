package audio

import (
	"testing"

	"github.com/lixenwraith/hostpatch/registry"
	"github.com/lixenwraith/hostpatch/service"
)

type fixedLevel float64

func (f fixedLevel) Ambience() float64 { return float64(f) }

func TestServiceRegistered(t *testing.T) {
	f, ok := registry.GetService("audio")
	if !ok {
		t.Fatal("audio service not registered")
	}
	if _, ok := f().(service.Service); !ok {
		t.Fatalf("factory returned %T", f())
	}
}

func TestServiceDisabledWithoutSource(t *testing.T) {
	s := NewService()
	if err := s.Init(DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !s.IsDisabled() || s.Engine() != nil {
		t.Error("service without a level source should be disabled")
	}
	if err := s.Start(); err != nil {
		t.Errorf("Start on disabled service: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestServiceInitFromLevelSource(t *testing.T) {
	s := NewService()
	if err := s.Init("ignored", fixedLevel(0.3), DefaultConfig()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if s.IsDisabled() || s.Engine() == nil {
		t.Fatal("service should hold an engine")
	}

	var published []any
	s.Contribute(func(r any) { published = append(published, r) })
	if len(published) != 1 || published[0] != s.Engine() {
		t.Errorf("published %v, want the engine", published)
	}
}
