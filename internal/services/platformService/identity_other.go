//go:build !darwin
// +build !darwin

package platformservice

import (
	"context"
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/host"
)

// detectIdentity has no device-model sysctl to read outside darwin, so the
// CPU brand stands in for the model and the kernel version for the build.
func detectIdentity(ctx context.Context) (Identity, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: host info: %v", ErrIdentityUnavailable, err)
	}

	device := cpuid.CPU.BrandName
	if device == "" {
		device = info.KernelArch
	}
	if device == "" || info.KernelVersion == "" {
		return Identity{}, fmt.Errorf("%w: empty device or build", ErrIdentityUnavailable)
	}

	return Identity{Device: device, Build: info.KernelVersion}, nil
}
