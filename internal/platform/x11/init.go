//go:build linux

package x11

import "specinput/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Lister: NewLister(),
			Sender: NewSender(),
		}, nil
	}
}
