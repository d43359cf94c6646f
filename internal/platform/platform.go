package platform

import (
	"context"

	"specinput/internal/model"
)

// ListOptions filters window listing.
type ListOptions struct {
	Title string // Filter by window title substring (case-insensitive)
}

// WindowLister enumerates windows via an external window-management tool.
type WindowLister interface {
	// ListWindows returns all windows, optionally filtered. A missing tool or
	// an empty desktop yields an empty slice, not an error.
	ListWindows(ctx context.Context, opts ListOptions) ([]model.Window, error)
}

// KeySender delivers key events to a specific window without changing focus.
type KeySender interface {
	// SendKey delivers a single key to the window with the given timing.
	SendKey(ctx context.Context, windowID, key string, cfg model.KeyConfig) error

	// SendKeys delivers an ordered key sequence to the window. Delivery stops
	// at the first key that fails.
	SendKeys(ctx context.Context, windowID string, keys []model.KeyEntry) error
}
