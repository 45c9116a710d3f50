package platformservice

import (
	"context"
	"errors"
	"fmt"
)

// ErrIdentityUnavailable is returned when the device model or OS build cannot be read.
var ErrIdentityUnavailable = errors.New("platform identity unavailable")

// Identity is the (device model, OS build) pair of the running platform,
// e.g. {"iPhone11,8", "16C50"}.
type Identity struct {
	Device string
	Build  string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %s", id.Device, id.Build)
}

// IdentityProvider obtains the platform identity.
type IdentityProvider interface {
	Identity(ctx context.Context) (Identity, error)
}

// StaticProvider returns a fixed identity.
type StaticProvider Identity

func (p StaticProvider) Identity(context.Context) (Identity, error) {
	return Identity(p), nil
}

// SystemProvider reads the identity from the operating system.
type SystemProvider struct{}

func (SystemProvider) Identity(ctx context.Context) (Identity, error) {
	return detectIdentity(ctx)
}

// OverrideProvider replaces the detected device and/or build with fixed values.
// When both overrides are set, Base is never queried.
type OverrideProvider struct {
	Base   IdentityProvider
	Device string
	Build  string
}

func (p OverrideProvider) Identity(ctx context.Context) (Identity, error) {
	if p.Device != "" && p.Build != "" {
		return Identity{Device: p.Device, Build: p.Build}, nil
	}

	id, err := p.Base.Identity(ctx)
	if err != nil {
		return Identity{}, err
	}
	if p.Device != "" {
		id.Device = p.Device
	}
	if p.Build != "" {
		id.Build = p.Build
	}
	return id, nil
}

// NewProvider returns the system provider, wrapped with overrides when either is set.
func NewProvider(device, build string) IdentityProvider {
	if device == "" && build == "" {
		return SystemProvider{}
	}
	return OverrideProvider{Base: SystemProvider{}, Device: device, Build: build}
}
