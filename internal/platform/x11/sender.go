package x11

import (
	"context"
	"fmt"
	"time"

	"specinput/internal/model"
)

// Sender delivers key events to a window via xdotool without altering input
// focus. Only --window forms are used; nothing here ever raises or focuses
// the target.
type Sender struct {
	backend Backend
}

// NewSender probes the available tools and returns a Sender.
func NewSender() *Sender {
	return &Sender{backend: detectSenderBackend()}
}

func (s *Sender) SendKeys(ctx context.Context, windowID string, keys []model.KeyEntry) error {
	for _, entry := range keys {
		if err := s.SendKey(ctx, windowID, entry.Key, entry.KeyConfig); err != nil {
			return fmt.Errorf("send key %q: %w", entry.Key, err)
		}
	}
	return nil
}

func (s *Sender) SendKey(ctx context.Context, windowID, key string, cfg model.KeyConfig) error {
	if s.backend != BackendXdotool {
		return fmt.Errorf("no key-injection tool available (install xdotool)")
	}
	repeat := cfg.Repeat
	if repeat < 1 {
		repeat = 1
	}
	for i := 0; i < repeat; i++ {
		if err := s.pressOnce(ctx, windowID, key, cfg.Hold); err != nil {
			return err
		}
		if cfg.Wait > 0 && i < repeat-1 {
			if err := sleepCtx(ctx, cfg.Wait); err != nil {
				return err
			}
		}
	}
	if cfg.Wait > 0 {
		return sleepCtx(ctx, cfg.Wait)
	}
	return nil
}

// pressOnce delivers one key press. With a hold time it uses keydown/keyup so
// the target sees the key held; if keydown is not accepted for this window it
// falls back to a plain key event, and for single alphanumeric tokens to a
// type event as a last resort.
func (s *Sender) pressOnce(ctx context.Context, windowID, key string, hold time.Duration) error {
	if hold > 0 {
		if _, err := runTool(ctx, "xdotool", "keydown", "--window", windowID, key); err == nil {
			if err := sleepCtx(ctx, hold); err != nil {
				return err
			}
			_, err = runTool(ctx, "xdotool", "keyup", "--window", windowID, key)
			return err
		}
	}
	if _, err := runTool(ctx, "xdotool", "key", "--window", windowID, key); err == nil {
		return nil
	}
	if len(key) == 1 && isAlnum(key[0]) {
		if _, err := runTool(ctx, "xdotool", "type", "--window", windowID, key); err == nil {
			return nil
		}
	}
	return fmt.Errorf("xdotool rejected key %q for window %s", key, windowID)
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
