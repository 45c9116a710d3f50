//go:build darwin
// +build darwin

package platformservice

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// detectIdentity reads hw.machine (e.g. "iPhone11,8") and kern.osversion (e.g. "16C50").
func detectIdentity(_ context.Context) (Identity, error) {
	machine, err := unix.Sysctl("hw.machine")
	if err != nil {
		return Identity{}, fmt.Errorf("%w: sysctl hw.machine: %v", ErrIdentityUnavailable, err)
	}

	build, err := unix.Sysctl("kern.osversion")
	if err != nil {
		return Identity{}, fmt.Errorf("%w: sysctl kern.osversion: %v", ErrIdentityUnavailable, err)
	}

	return Identity{Device: machine, Build: build}, nil
}
