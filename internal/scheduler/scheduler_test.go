package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"specinput/internal/model"
)

// fakeSender records delivered key sequences and can be told to fail.
type fakeSender struct {
	mu       sync.Mutex
	calls    [][]string
	inFlight int
	overlap  bool
	fail     bool
}

func (f *fakeSender) SendKey(_ context.Context, _ string, key string, _ model.KeyConfig) error {
	return f.SendKeys(context.Background(), "", []model.KeyEntry{{Key: key}})
}

func (f *fakeSender) SendKeys(_ context.Context, _ string, keys []model.KeyEntry) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > 1 {
		f.overlap = true
	}
	fail := f.fail
	if !fail {
		f.calls = append(f.calls, model.KeyNames(keys))
	}
	f.mu.Unlock()

	// Simulate the bounded subprocess call
	time.Sleep(time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if fail {
		return fmt.Errorf("no such window")
	}
	return nil
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSender) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func testConfig(sender *fakeSender, interval time.Duration) Config {
	keys, _ := model.ParseKeys("w a s d")
	return Config{
		WindowID: "0x04a00007",
		Keys:     keys,
		Interval: interval,
	}
}

func TestStart_RejectsInvalidConfig(t *testing.T) {
	loop := New(&fakeSender{})
	keys, _ := model.ParseKeys("space")

	cases := []struct {
		name string
		cfg  Config
	}{
		{"no window", Config{Keys: keys, Interval: time.Second}},
		{"no keys", Config{WindowID: "0x1", Interval: time.Second}},
		{"zero interval", Config{WindowID: "0x1", Keys: keys}},
		{"negative interval", Config{WindowID: "0x1", Keys: keys, Interval: -time.Second}},
	}
	for _, tc := range cases {
		if err := loop.Start(tc.cfg); err == nil {
			loop.Stop()
			t.Errorf("%s: expected error", tc.name)
		}
	}
	if loop.Active() {
		t.Fatal("loop must stay inactive after rejected starts")
	}
}

func TestToggle_TwiceReturnsToInactive(t *testing.T) {
	sender := &fakeSender{}
	loop := New(sender)
	cfg := testConfig(sender, time.Hour)

	active, err := loop.Toggle(cfg)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !active || !loop.Active() {
		t.Fatal("expected loop active after first toggle")
	}

	active, err = loop.Toggle(cfg)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if active || loop.Active() {
		t.Fatal("expected loop inactive after second toggle")
	}
}

func TestStart_WhileActiveFails(t *testing.T) {
	sender := &fakeSender{}
	loop := New(sender)
	cfg := testConfig(sender, time.Hour)

	if err := loop.Start(cfg); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer loop.Stop()

	if err := loop.Start(cfg); err == nil {
		t.Fatal("expected error starting an active loop")
	}
}

func TestRun_TickCountApproximatesDurationOverInterval(t *testing.T) {
	sender := &fakeSender{}
	loop := New(sender)

	interval := 50 * time.Millisecond
	duration := 500 * time.Millisecond

	if err := loop.Start(testConfig(sender, interval)); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(duration)
	loop.Stop()

	got := sender.callCount()
	want := int(duration / interval)
	if got < want-2 || got > want+2 {
		t.Fatalf("expected about %d ticks, got %d", want, got)
	}
	sender.mu.Lock()
	overlap := sender.overlap
	sender.mu.Unlock()
	if overlap {
		t.Fatal("ticks overlapped")
	}
}

func TestRun_DeliversKeysInOrder(t *testing.T) {
	sender := &fakeSender{}
	loop := New(sender)

	if err := loop.Start(testConfig(sender, 20*time.Millisecond)); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	loop.Stop()

	if sender.callCount() == 0 {
		t.Fatal("expected at least one tick")
	}
	want := []string{"w", "a", "s", "d"}
	for _, call := range sender.calls {
		if len(call) != len(want) {
			t.Fatalf("expected %d keys per tick, got %d", len(want), len(call))
		}
		for i := range want {
			if call[i] != want[i] {
				t.Fatalf("tick keys out of order: %v", call)
			}
		}
	}
}

func TestRun_CycleCallbackCountsSuccesses(t *testing.T) {
	sender := &fakeSender{}
	loop := New(sender)

	var mu sync.Mutex
	var counts []int
	cfg := testConfig(sender, 20*time.Millisecond)
	cfg.OnCycle = func(runs int) {
		mu.Lock()
		counts = append(counts, runs)
		mu.Unlock()
	}

	if err := loop.Start(cfg); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(90 * time.Millisecond)
	loop.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(counts) == 0 {
		t.Fatal("expected cycle callbacks")
	}
	for i, c := range counts {
		if c != i+1 {
			t.Fatalf("expected monotonically increasing run counts, got %v", counts)
		}
	}
}

func TestRun_AutoDeactivatesAfterConsecutiveFailures(t *testing.T) {
	sender := &fakeSender{}
	sender.setFail(true)
	loop := New(sender)

	deactivated := make(chan string, 1)
	cfg := testConfig(sender, 5*time.Millisecond)
	cfg.MaxFailures = 3
	cfg.OnDeactivate = func(reason string) { deactivated <- reason }

	if err := loop.Start(cfg); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case reason := <-deactivated:
		if reason == "" {
			t.Fatal("expected a deactivation reason")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not auto-deactivate")
	}

	// The loop must have flipped itself inactive
	for i := 0; i < 50 && loop.Active(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if loop.Active() {
		t.Fatal("loop still active after auto-deactivation")
	}
}

func TestRun_FailureCountResetsOnSuccess(t *testing.T) {
	sender := &fakeSender{}
	sender.setFail(true)
	loop := New(sender)

	deactivated := make(chan string, 1)
	cfg := testConfig(sender, 5*time.Millisecond)
	cfg.MaxFailures = 8
	cfg.OnDeactivate = func(reason string) { deactivated <- reason }

	if err := loop.Start(cfg); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Let it fail a couple of times, then recover
	time.Sleep(12 * time.Millisecond)
	sender.setFail(false)
	time.Sleep(30 * time.Millisecond)

	select {
	case <-deactivated:
		t.Fatal("loop deactivated despite recovery")
	default:
	}
	loop.Stop()
}

func TestStop_Inactive(t *testing.T) {
	loop := New(&fakeSender{})
	loop.Stop() // must not panic or block
	if loop.Active() {
		t.Fatal("loop should be inactive")
	}
}
