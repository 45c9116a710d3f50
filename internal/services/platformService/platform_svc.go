package platformservice

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	utils "github.com/redjax/kparams/internal/utils/convert"
)

// PlatformInfo holds the identity used for parameter resolution plus a
// summary of the host it was read from.
type PlatformInfo struct {
	Identity Identity
	// e.g. "darwin", "ios", "linux"
	OS string
	// e.g. "arm64"
	Arch string
	// e.g. "ubuntu 24.04", "darwin 18.2.0"
	OSRelease     string
	KernelVersion string
	Hostname      string
	Uptime        time.Duration
	// bytes
	TotalRAM   uint64
	CPUModel   string
	CPUVendor  string
	CPUCores   int
	CPUThreads int
}

// Format renders the info as an indented block.
func (p PlatformInfo) Format() string {
	var builder strings.Builder

	builder.WriteString("Platform Identity:\n")
	builder.WriteString(fmt.Sprintf("  Device:        %s\n", p.Identity.Device))
	builder.WriteString(fmt.Sprintf("  Build:         %s\n", p.Identity.Build))

	builder.WriteString("\nHost:\n")
	builder.WriteString(fmt.Sprintf("  OS:            %s\n", p.OS))
	builder.WriteString(fmt.Sprintf("  Architecture:  %s\n", p.Arch))
	builder.WriteString(fmt.Sprintf("  OS Release:    %s\n", p.OSRelease))
	builder.WriteString(fmt.Sprintf("  Kernel:        %s\n", p.KernelVersion))
	builder.WriteString(fmt.Sprintf("  Hostname:      %s\n", p.Hostname))
	builder.WriteString(fmt.Sprintf("  Uptime:        %s\n", p.Uptime.String()))
	builder.WriteString(fmt.Sprintf("  Total RAM:     %s\n", utils.BytesToHumanReadable(p.TotalRAM)))
	builder.WriteString(fmt.Sprintf("  CPU Model:     %s\n", p.CPUModel))
	builder.WriteString(fmt.Sprintf("  CPU Vendor:    %s\n", p.CPUVendor))
	builder.WriteString(fmt.Sprintf("  CPU Cores:     %d\n", p.CPUCores))
	builder.WriteString(fmt.Sprintf("  CPU Threads:   %d\n", p.CPUThreads))

	return builder.String()
}

// GatherPlatformInfo collects the identity from provider and a best-effort
// host summary. Only an identity failure is returned as an error.
func GatherPlatformInfo(ctx context.Context, provider IdentityProvider) (*PlatformInfo, error) {
	id, err := provider.Identity(ctx)
	if err != nil {
		return nil, err
	}

	pi := &PlatformInfo{
		Identity:   id,
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		CPUModel:   cpuid.CPU.BrandName,
		CPUVendor:  cpuid.CPU.VendorString,
		CPUCores:   cpuid.CPU.PhysicalCores,
		CPUThreads: cpuid.CPU.LogicalCores,
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		pi.OSRelease = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		pi.KernelVersion = info.KernelVersion
		pi.Hostname = info.Hostname
		pi.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		pi.TotalRAM = vm.Total
	}

	return pi, nil
}
