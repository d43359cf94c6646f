package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the external-tool backends for the current OS.
type Provider struct {
	Lister WindowLister
	Sender KeySender
}

// ErrUnsupported is returned on platforms without a registered backend.
var ErrUnsupported = fmt.Errorf("specinput is not supported on %s/%s; supported: linux (X11)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/x11 for the Linux registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
