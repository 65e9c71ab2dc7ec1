package power

import (
	"log/slog"
	"sync"

	"github.com/exynos7904/powerd/internal/logging"
)

// NodeWriter writes and probes kernel control nodes. Write failures are
// handled (logged) by the implementation.
type NodeWriter interface {
	Write(path, value string)
	Exists(path string) bool
}

// Frequencies holds the scaling_max_freq literals written to the little
// cluster, in kHz.
type Frequencies struct {
	Interactive string `yaml:"interactive" json:"interactive"`
	Standby     string `yaml:"standby" json:"standby"`
	PowerSave   string `yaml:"power_save" json:"power_save"`
}

// Platform is the table of control nodes the policy drives.
type Platform struct {
	// InteractiveNodes are candidates probed at startup, in order.
	InteractiveNodes []string    `yaml:"interactive_nodes" json:"interactive_nodes"`
	CPUMaxFreqNode   string      `yaml:"cpu_max_freq_node" json:"cpu_max_freq_node"`
	TouchCommandNode string      `yaml:"touch_command_node" json:"touch_command_node"`
	Freq             Frequencies `yaml:"freq" json:"freq"`
}

// DefaultPlatform returns the exynos7904 node table.
//
// Only cpu0 (the little cluster) is capped: scaling the big cluster
// does not take effect on this SoC.
func DefaultPlatform() Platform {
	return Platform{
		InteractiveNodes: []string{
			"/sys/class/sec/tsp/input/enabled",
			"/sys/class/power_supply/battery/lcd",
		},
		CPUMaxFreqNode:   "/sys/devices/system/cpu/cpu0/cpufreq/scaling_max_freq",
		TouchCommandNode: "/sys/class/sec/tsp/cmd",
		Freq: Frequencies{
			Interactive: "1586000",
			Standby:     "1014000",
			PowerSave:   "1144000",
		},
	}
}

// Policy translates interactivity changes, hints, feature toggles and
// profile switches into control node writes.
//
// Every method holds the policy lock for its whole duration, so node
// writes belonging to one call are never interleaved with another's.
type Policy struct {
	platform Platform
	nodes    NodeWriter
	touch    TouchController

	// interactiveNodes is fixed after New.
	interactiveNodes []string

	mu        sync.Mutex
	doubleTap bool
	profile   Profile
}

// New probes the interactive nodes, initializes the touch controller
// and returns a policy in the Balanced profile with double tap off.
func New(platform Platform, nodes NodeWriter, touch TouchController) *Policy {
	p := &Policy{
		platform: platform,
		nodes:    nodes,
		touch:    touch,
		profile:  Balanced,
	}

	if err := touch.Init(); err != nil {
		slog.Warn("touchscreen controller unavailable", "err", err)
	}

	slog.Debug("looking for touchscreen/lcd nodes")
	for _, path := range platform.InteractiveNodes {
		if nodes.Exists(path) {
			p.interactiveNodes = append(p.interactiveNodes, path)
		}
	}

	return p
}

// SetInteractive switches the device between screen on and standby.
func (p *Policy) SetInteractive(interactive bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	freq := p.platform.Freq.Standby
	if interactive {
		freq = p.platform.Freq.Interactive
	}
	p.nodes.Write(p.platform.CPUMaxFreqNode, freq)

	// Arm double tap before the touchscreen goes off; the driver misses
	// the request once input is disabled.
	if p.doubleTap && !interactive {
		p.touch.EnableDoubleTap()
	}

	value := "0"
	if interactive {
		value = "1"
	}
	for _, path := range p.interactiveNodes {
		p.nodes.Write(path, value)
	}

	// Disarm only after the touchscreen is back on.
	if p.doubleTap && interactive {
		p.touch.DisableDoubleTap()
	}
}

// PowerHint handles a framework power hint. data is hint specific.
//
// Interaction boosting is not implemented: changing CPU frequencies or
// hotplugging cores on hint hangs this SoC.
func (p *Policy) PowerHint(hint Hint, data int32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.profile == PowerSave && hint != HintLowPower && hint != HintSetProfile {
		logging.Verbose("power save profile active, ignoring hint", "hint", hint)
		return
	}

	switch hint {
	case HintLowPower:
		slog.Debug("power hint", "hint", hint)
	case HintSetProfile:
		slog.Debug("power hint", "hint", hint, "profile", Profile(data))
	default:
	}
}

// SetFeature toggles a boolean feature. Unknown features are ignored.
func (p *Policy) SetFeature(feature Feature, activate bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch feature {
	case FeatureDoubleTapToWake:
		if activate {
			slog.Info("enable double tap to wake")
		} else {
			slog.Info("disable double tap to wake")
		}
		p.doubleTap = activate
	default:
	}
}

// PlatformLowPowerStats reports platform sleep states. This platform
// exposes none, so the list is always empty: callers must read that as
// unsupported rather than zero.
func (p *Policy) PlatformLowPowerStats() ([]PlatformSleepState, Status) {
	return []PlatformSleepState{}, StatusSuccess
}

// Feature answers a vendor feature query, or -1 if unknown.
func (p *Policy) Feature(feature VendorFeature) int32 {
	switch feature {
	case FeatureSupportedProfiles:
		return int32(ProfileMax)
	default:
	}
	return -1
}

// SetProfile switches the performance profile. Balanced and
// HighPerformance share the same CPU cap on this platform. Unknown
// profiles are ignored and leave the current profile in place.
func (p *Policy) SetProfile(profile Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.profile == profile {
		return
	}
	if !profile.Valid() {
		slog.Warn("ignoring unknown profile", "profile", profile)
		return
	}

	switch profile {
	case PowerSave:
		p.nodes.Write(p.platform.CPUMaxFreqNode, p.platform.Freq.PowerSave)
	case Balanced, HighPerformance:
		p.nodes.Write(p.platform.CPUMaxFreqNode, p.platform.Freq.Interactive)
	}

	slog.Info("profile changed", "from", p.profile, "to", profile)
	p.profile = profile
}

// State is a point-in-time view of the policy.
type State struct {
	Profile          Profile  `json:"profile"`
	ProfileName      string   `json:"profile_name"`
	DoubleTapEnabled bool     `json:"double_tap_enabled"`
	InteractiveNodes []string `json:"interactive_nodes"`
}

// State returns the current profile, feature flag and probed nodes.
func (p *Policy) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	nodes := make([]string, len(p.interactiveNodes))
	copy(nodes, p.interactiveNodes)

	return State{
		Profile:          p.profile,
		ProfileName:      p.profile.String(),
		DoubleTapEnabled: p.doubleTap,
		InteractiveNodes: nodes,
	}
}

// Platform returns the node table the policy was built with.
func (p *Policy) Platform() Platform {
	return p.platform
}
