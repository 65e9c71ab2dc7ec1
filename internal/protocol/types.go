package protocol

import (
	"encoding/json"

	"github.com/exynos7904/powerd/internal/power"
)

// Request types accepted from the power service.
const (
	TypeSetInteractive = "set_interactive"
	TypePowerHint      = "power_hint"
	TypeSetFeature     = "set_feature"
	TypeLowPowerStats  = "get_platform_low_power_stats"
	TypeGetFeature     = "get_feature"
	TypeSetProfile     = "set_profile"
	TypeGetStatus      = "get_status"
)

// Request is a message from the power service to the HAL.
type Request struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Response is a message from the HAL to the power service.
type Response struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Success bool        `json:"success"`
	Payload interface{} `json:"payload"`
}

// Required payload fields are pointers so that a missing or misspelled
// key is told apart from a zero value.

// SetInteractivePayload is the payload for a "set_interactive" request.
type SetInteractivePayload struct {
	Interactive *bool `json:"interactive"`
}

// PowerHintPayload is the payload for a "power_hint" request.
type PowerHintPayload struct {
	Hint *power.Hint `json:"hint"`
	Data int32       `json:"data,omitempty"`
}

// SetFeaturePayload is the payload for a "set_feature" request.
type SetFeaturePayload struct {
	Feature  *power.Feature `json:"feature"`
	Activate *bool          `json:"activate"`
}

// GetFeaturePayload is the payload for a "get_feature" request.
type GetFeaturePayload struct {
	Feature *power.VendorFeature `json:"feature"`
}

// FeatureResult is the response for get_feature. -1 means unsupported.
type FeatureResult struct {
	Value int32 `json:"value"`
}

// SetProfilePayload is the payload for a "set_profile" request.
type SetProfilePayload struct {
	Profile *power.Profile `json:"profile"`
}

// LowPowerStatsResult is the response for get_platform_low_power_stats.
// An empty States list means the platform does not report sleep states.
type LowPowerStatsResult struct {
	States []power.PlatformSleepState `json:"states"`
	Status power.Status               `json:"status"`
}

// InfoPayload is sent by the HAL on connect.
type InfoPayload struct {
	OS                string   `json:"os"`
	Profile           string   `json:"profile"`
	SupportedProfiles int32    `json:"supported_profiles"`
	InteractiveNodes  []string `json:"interactive_nodes"`
}

// ErrorPayload for error responses.
type ErrorPayload struct {
	Error string `json:"error"`
}
