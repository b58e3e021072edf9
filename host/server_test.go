package host

import (
	"testing"
	"time"
)

func TestServerApplyFiresHookBeforePacket(t *testing.T) {
	rec := &recorder{}
	c := NewClient(ClientConfig{}, rec)
	c.LoadWorld(0)
	s := NewServer(BuildNamed, rec, c)
	s.Load(0)

	torch := BlockPos{4, 20, 4}
	s.Apply(torch, 14)

	calls := rec.snapshot()
	if last := calls[len(calls)-1]; last != "block (4,20,4) 14 remote=false" {
		t.Errorf("Expected block hook on the server world, got %q", last)
	}
	if got := s.World().BlockLight(torch); got != 14 {
		t.Errorf("Expected server world updated, got %d", got)
	}
	if got := c.World().BlockLight(torch); got != 0 {
		t.Errorf("Expected client world untouched before the packet, got %d", got)
	}

	c.Step()
	if got := c.World().BlockLight(torch); got != 14 {
		t.Errorf("Expected packet applied on step, got %d", got)
	}

	s.Apply(torch, 0)
	calls = rec.snapshot()
	if last := calls[len(calls)-1]; last != "block (4,20,4) 14 remote=false" {
		t.Errorf("Expected break to report the removed light value, got %q", last)
	}
	if s.Changes() != 2 {
		t.Errorf("Expected 2 light changes, got %d", s.Changes())
	}
}

func TestServerIgnoresDarkBlocks(t *testing.T) {
	rec := &recorder{}
	s := NewServer(BuildObfuscated, rec, nil)
	s.Load(0)
	before := len(rec.snapshot())

	s.Apply(BlockPos{1, 1, 1}, 0)
	if got := len(rec.snapshot()); got != before {
		t.Errorf("Expected no hook for a dark block, got %v", rec.snapshot()[before:])
	}
}

func TestServerStartStop(t *testing.T) {
	c := NewClient(ClientConfig{}, nil)
	s := NewServer(BuildNamed, nil, c)
	if s.Place(BlockPos{}, 10) {
		t.Error("Expected Place to fail before Start")
	}

	s.Start()
	if !s.Place(BlockPos{0, 10, 0}, 10) {
		t.Fatal("Expected Place to be accepted")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Changes() < 1 {
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for server to apply the change")
		}
		time.Sleep(time.Millisecond)
	}

	s.Stop()
	s.Stop()
	if s.Break(BlockPos{0, 10, 0}) {
		t.Error("Expected Break to fail after Stop")
	}
}
