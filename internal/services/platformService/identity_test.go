package platformservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	id    Identity
	err   error
	calls int
}

func (p *stubProvider) Identity(context.Context) (Identity, error) {
	p.calls++
	return p.id, p.err
}

func TestStaticProvider(t *testing.T) {
	id, err := StaticProvider{Device: "iPhone11,8", Build: "16C50"}.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Identity{Device: "iPhone11,8", Build: "16C50"}, id)
	assert.Equal(t, "iPhone11,8 16C50", id.String())
}

func TestOverrideProvider(t *testing.T) {
	tests := []struct {
		name   string
		device string
		build  string
		want   Identity
		calls  int
	}{
		{"both overridden", "iPhone10,4", "16B92", Identity{"iPhone10,4", "16B92"}, 0},
		{"device only", "iPhone10,4", "", Identity{"iPhone10,4", "16C50"}, 1},
		{"build only", "", "16B92", Identity{"iPhone11,8", "16B92"}, 1},
		{"neither", "", "", Identity{"iPhone11,8", "16C50"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &stubProvider{id: Identity{"iPhone11,8", "16C50"}}
			p := OverrideProvider{Base: base, Device: tt.device, Build: tt.build}

			id, err := p.Identity(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.calls, base.calls)
		})
	}
}

func TestOverrideProvider_PropagatesError(t *testing.T) {
	base := &stubProvider{err: ErrIdentityUnavailable}
	_, err := OverrideProvider{Base: base, Device: "iPhone11,8"}.Identity(context.Background())
	assert.True(t, errors.Is(err, ErrIdentityUnavailable))
}

func TestNewProvider(t *testing.T) {
	assert.IsType(t, SystemProvider{}, NewProvider("", ""))
	assert.IsType(t, OverrideProvider{}, NewProvider("iPhone11,8", ""))
}

func TestGatherPlatformInfo(t *testing.T) {
	info, err := GatherPlatformInfo(context.Background(), StaticProvider{Device: "iPhone11,8", Build: "16C50"})
	require.NoError(t, err)
	assert.Equal(t, "iPhone11,8", info.Identity.Device)
	assert.NotEmpty(t, info.OS)
	assert.Contains(t, info.Format(), "16C50")

	_, err = GatherPlatformInfo(context.Background(), &stubProvider{err: ErrIdentityUnavailable})
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}
