package power

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Profile is a coarse device-wide performance/power tradeoff.
type Profile int32

const (
	PowerSave Profile = iota
	Balanced
	HighPerformance

	// ProfileMax is the number of defined profiles, not a profile.
	ProfileMax
)

func (p Profile) String() string {
	switch p {
	case PowerSave:
		return "power_save"
	case Balanced:
		return "balanced"
	case HighPerformance:
		return "high_performance"
	}
	return "profile(" + strconv.Itoa(int(p)) + ")"
}

// Valid reports whether p names one of the defined profiles.
func (p Profile) Valid() bool {
	return p >= PowerSave && p < ProfileMax
}

// ParseProfile accepts a profile name or its numeric value. Numbers are
// not range checked; SetProfile decides what to do with unknown values.
func ParseProfile(s string) (Profile, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "power_save", "powersave":
		return PowerSave, nil
	case "balanced":
		return Balanced, nil
	case "high_performance", "performance":
		return HighPerformance, nil
	}
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid profile %q", s)
	}
	return Profile(n), nil
}

// UnmarshalJSON accepts either a number or a profile name.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var n int32
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Profile(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("profile must be a number or a name: %w", err)
	}
	parsed, err := ParseProfile(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Hint is a power hint sent by the framework power service.
type Hint int32

const (
	HintVsync                Hint = 0x00000001
	HintInteraction          Hint = 0x00000002
	HintVideoEncode          Hint = 0x00000003
	HintVideoDecode          Hint = 0x00000004
	HintLowPower             Hint = 0x00000005
	HintSustainedPerformance Hint = 0x00000006
	HintVRMode               Hint = 0x00000007
	HintLaunch               Hint = 0x00000008

	// HintSetProfile is the vendor extension carrying a profile in data.
	HintSetProfile Hint = 0x00000111
)

func (h Hint) String() string {
	switch h {
	case HintVsync:
		return "VSYNC"
	case HintInteraction:
		return "INTERACTION"
	case HintVideoEncode:
		return "VIDEO_ENCODE"
	case HintVideoDecode:
		return "VIDEO_DECODE"
	case HintLowPower:
		return "LOW_POWER"
	case HintSustainedPerformance:
		return "SUSTAINED_PERFORMANCE"
	case HintVRMode:
		return "VR_MODE"
	case HintLaunch:
		return "LAUNCH"
	case HintSetProfile:
		return "SET_PROFILE"
	}
	return fmt.Sprintf("HINT(%#x)", int32(h))
}

// Feature is a boolean feature toggled through SetFeature.
type Feature int32

const (
	FeatureDoubleTapToWake Feature = 0x00000001
)

func (f Feature) String() string {
	if f == FeatureDoubleTapToWake {
		return "DOUBLE_TAP_TO_WAKE"
	}
	return fmt.Sprintf("FEATURE(%#x)", int32(f))
}

// VendorFeature is a query answered by Policy.Feature.
type VendorFeature int32

const (
	FeatureSupportedProfiles VendorFeature = 0x00001000
)

// Status is the result code reported with platform statistics.
type Status int32

// StatusSuccess is the only status this platform reports.
const StatusSuccess Status = 0

// PlatformSleepState describes one platform low power state.
type PlatformSleepState struct {
	Name                     string  `json:"name"`
	ResidencyInMsecSinceBoot uint64  `json:"residency_in_msec_since_boot"`
	TotalTransitions         uint64  `json:"total_transitions"`
	SupportedOnlyInSuspend   bool    `json:"supported_only_in_suspend"`
	Voters                   []Voter `json:"voters,omitempty"`
}

// Voter is a subsystem voting for a PlatformSleepState.
type Voter struct {
	Name                             string `json:"name"`
	TotalTimeInMsecVotedForSinceBoot uint64 `json:"total_time_in_msec_voted_for_since_boot"`
	TotalNumberOfTimesVotedSinceBoot uint64 `json:"total_number_of_times_voted_since_boot"`
}
