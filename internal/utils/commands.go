package utils

import (
	"github.com/spf13/cobra"

	"github.com/redjax/kparams/internal/config"
	"github.com/redjax/kparams/internal/logging"
	parameterservice "github.com/redjax/kparams/internal/services/parameterService"
	platformservice "github.com/redjax/kparams/internal/services/platformService"
	"github.com/redjax/kparams/internal/version"
)

// CommandEnv is what a subcommand needs once flags are parsed.
type CommandEnv struct {
	Config   *config.Config
	Logger   *logging.Logger
	Provider platformservice.IdentityProvider
}

// LoadCommandEnv loads the configuration from cmd's flags and builds the
// logger and identity provider from it.
func LoadCommandEnv(cmd *cobra.Command) (*CommandEnv, error) {
	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Logging, version.Version).With("command", cmd.Name())
	logger.Debug("configuration loaded",
		"device_override", cfg.Platform.Device,
		"build_override", cfg.Platform.Build,
		"min_offsets", cfg.Resolver.MinOffsets,
		"markers", cfg.Resolver.Markers)

	return &CommandEnv{
		Config:   cfg,
		Logger:   logger,
		Provider: platformservice.NewProvider(cfg.Platform.Device, cfg.Platform.Build),
	}, nil
}

// Resolver returns a resolver configured from the environment.
func (e *CommandEnv) Resolver() (*parameterservice.Resolver, error) {
	return parameterservice.NewResolverFromConfig(e.Config.Resolver, e.Provider, e.Logger)
}
