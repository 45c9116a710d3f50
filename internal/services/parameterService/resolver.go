package parameterservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/redjax/kparams/internal/config"
	"github.com/redjax/kparams/internal/logging"
	platformservice "github.com/redjax/kparams/internal/services/platformService"
)

// Report describes one resolution cycle.
type Report struct {
	CycleID  string
	Identity platformservice.Identity
	// Profile is the offsets profile chosen for the device.
	Profile string
	// Recognized is true when a family rule (or a forced profile) chose the profile.
	Recognized  bool
	SystemCount int
	OffsetCount int
	MinOffsets  int
}

// Resolver selects and runs the initializations for the running platform.
//
// The exported fields may be changed after NewResolver and before the first
// call to Resolve or Init.
type Resolver struct {
	Provider platformservice.IdentityProvider
	Logger   *logging.Logger
	Matcher  Matcher

	MinOffsets     int
	DefaultProfile Profile
	Rules          []FamilyRule
	// ForcedProfile, when set, is used regardless of the device.
	ForcedProfile *Profile

	SystemRecords Registry
	// OffsetRecords runs after SystemRecords. Its first record is replaced by
	// the device record for the selected profile.
	OffsetRecords Registry

	once   sync.Once
	store  *Store
	report *Report
	err    error
}

// NewResolver returns a resolver with the built-in tables.
func NewResolver(provider platformservice.IdentityProvider, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		Provider:       provider,
		Logger:         logger,
		Matcher:        SubstringMatcher{},
		MinOffsets:     DefaultMinOffsets,
		DefaultProfile: DefaultProfile(),
		Rules:          DefaultFamilyRules(),
		SystemRecords:  SystemRecords(),
		OffsetRecords:  OffsetRecords(),
	}
}

// NewResolverFromConfig applies the resolver section of the configuration.
// Extra markers are added to the rule that selects the iPhone11,8 offsets.
func NewResolverFromConfig(cfg config.ResolverConfig, provider platformservice.IdentityProvider, logger *logging.Logger) (*Resolver, error) {
	r := NewResolver(provider, logger)

	if cfg.MinOffsets > 0 {
		r.MinOffsets = cfg.MinOffsets
	}

	m, ok := MatcherByName(cfg.Matcher)
	if !ok {
		return nil, fmt.Errorf("unknown matcher %q", cfg.Matcher)
	}
	r.Matcher = m

	for i := range r.Rules {
		if r.Rules[i].Profile.Name == ProfileIPhone11_8_16C50 {
			r.Rules[i].Markers = append(r.Rules[i].Markers, cfg.Markers...)
		}
	}

	if cfg.Profile != "" {
		p, ok := ProfileByName(cfg.Profile)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, cfg.Profile)
		}
		r.ForcedProfile = &p
	}

	return r, nil
}

// ProfileByName looks up a built-in profile.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// SelectProfile returns the profile for device and whether a rule recognized it.
func (r *Resolver) SelectProfile(device string) (Profile, bool) {
	if r.ForcedProfile != nil {
		return *r.ForcedProfile, true
	}

	// Markers are family prefixes, so they always match by substring.
	var m SubstringMatcher
	for _, rule := range r.Rules {
		for _, marker := range rule.Markers {
			if m.Match(device, Pattern(marker)) {
				return rule.Profile, true
			}
		}
	}
	return r.DefaultProfile, false
}

// Resolve runs one resolution cycle and returns the frozen store.
//
// It fails with a *CoverageError (wrapping ErrInsufficientCoverage) when
// fewer than MinOffsets offset records ran.
func (r *Resolver) Resolve(ctx context.Context) (*Store, *Report, error) {
	id, err := r.Provider.Identity(ctx)
	if err != nil {
		r.Logger.Error("failed to detect platform", "error", err)
		return nil, nil, fmt.Errorf("detecting platform identity: %w", err)
	}
	if id.Device == "" || id.Build == "" {
		r.Logger.Error("failed to detect platform", "device", id.Device, "build", id.Build)
		return nil, nil, fmt.Errorf("detecting platform identity: %w: empty device or build", platformservice.ErrIdentityUnavailable)
	}

	profile, recognized := r.SelectProfile(id.Device)

	report := &Report{
		CycleID:    uuid.NewString(),
		Identity:   id,
		Profile:    profile.Name,
		Recognized: recognized,
		MinOffsets: r.MinOffsets,
	}
	log := r.Logger.With("cycle", report.CycleID)

	// The device record is built from the identity itself, so it matches by
	// construction rather than through a table of exact device/build pairs.
	deviceRecord := Record{
		Name:   profile.Name,
		Device: Pattern(id.Device),
		Build:  Pattern(id.Build),
		Action: profile.Action,
	}
	offsets := make(Registry, 0, len(r.OffsetRecords)+1)
	offsets = append(offsets, deviceRecord)
	if len(r.OffsetRecords) > 0 {
		offsets = append(offsets, r.OffsetRecords[1:]...)
	}

	log.Info("using offsets", "device", id.Device, "build", id.Build, "profile", profile.Name)
	if !recognized {
		log.Info("device not in any family; if these offsets don't work, add it to resolver.markers (KPARAMS_RESOLVER_MARKERS)",
			"marker", id.Device)
	}

	store := NewStore()
	report.SystemCount = r.SystemRecords.Run(store, id, r.Matcher)
	report.OffsetCount = offsets.Run(store, id, r.Matcher)

	log.Debug("initializations complete",
		"system", report.SystemCount,
		"offsets", report.OffsetCount,
		"parameters", store.Len())

	if report.OffsetCount < r.MinOffsets {
		cerr := &CoverageError{Identity: id, Count: report.OffsetCount, Min: r.MinOffsets}
		log.Error("insufficient offsets",
			"device", id.Device,
			"build", id.Build,
			"count", report.OffsetCount,
			"min", r.MinOffsets)
		return nil, report, cerr
	}

	store.Freeze()
	return store, report, nil
}

// Init resolves the parameters once and reports whether the store is usable.
// Later calls return the outcome of the first one.
func (r *Resolver) Init(ctx context.Context) bool {
	r.once.Do(func() {
		r.store, r.report, r.err = r.Resolve(ctx)
	})
	return r.err == nil
}

// Store returns the resolved store, or nil if Init has not succeeded.
func (r *Resolver) Store() *Store {
	if r.err != nil {
		return nil
	}
	return r.store
}

// Report returns the report of the Init cycle, if any.
func (r *Resolver) Report() *Report { return r.report }

// Err returns the error of the Init cycle, if any.
func (r *Resolver) Err() error { return r.err }
