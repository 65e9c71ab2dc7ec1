package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/exynos7904/powerd/internal/power"
	"github.com/exynos7904/powerd/internal/protocol"
)

// Dispatcher routes power service requests to a Policy. It is shared by
// the websocket client and the HTTP API.
type Dispatcher struct {
	policy *power.Policy
}

// New creates a Dispatcher for the given policy.
func New(policy *power.Policy) *Dispatcher {
	return &Dispatcher{policy: policy}
}

// Policy returns the policy requests are routed to.
func (d *Dispatcher) Policy() *power.Policy {
	return d.policy
}

// Handle runs a single request to completion and returns its response.
func (d *Dispatcher) Handle(req protocol.Request) protocol.Response {
	switch req.Type {
	case protocol.TypeSetInteractive:
		return d.handleSetInteractive(req)
	case protocol.TypePowerHint:
		return d.handlePowerHint(req)
	case protocol.TypeSetFeature:
		return d.handleSetFeature(req)
	case protocol.TypeLowPowerStats:
		return d.handleLowPowerStats(req)
	case protocol.TypeGetFeature:
		return d.handleGetFeature(req)
	case protocol.TypeSetProfile:
		return d.handleSetProfile(req)
	case protocol.TypeGetStatus:
		return ok(req, d.policy.State())
	default:
		return fail(req, fmt.Errorf("unknown request type: %s", req.Type))
	}
}

// Info describes this HAL for the power service.
func (d *Dispatcher) Info() protocol.InfoPayload {
	st := d.policy.State()
	return protocol.InfoPayload{
		OS:                fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Profile:           st.ProfileName,
		SupportedProfiles: d.policy.Feature(power.FeatureSupportedProfiles),
		InteractiveNodes:  st.InteractiveNodes,
	}
}

func (d *Dispatcher) handleSetInteractive(req protocol.Request) protocol.Response {
	var p protocol.SetInteractivePayload
	if err := decode(req, &p); err != nil {
		return fail(req, err)
	}
	if p.Interactive == nil {
		return fail(req, missing(req, "interactive"))
	}
	d.policy.SetInteractive(*p.Interactive)
	return ok(req, struct{}{})
}

func (d *Dispatcher) handlePowerHint(req protocol.Request) protocol.Response {
	var p protocol.PowerHintPayload
	if err := decode(req, &p); err != nil {
		return fail(req, err)
	}
	if p.Hint == nil {
		return fail(req, missing(req, "hint"))
	}
	d.policy.PowerHint(*p.Hint, p.Data)
	return ok(req, struct{}{})
}

func (d *Dispatcher) handleSetFeature(req protocol.Request) protocol.Response {
	var p protocol.SetFeaturePayload
	if err := decode(req, &p); err != nil {
		return fail(req, err)
	}
	if p.Feature == nil {
		return fail(req, missing(req, "feature"))
	}
	if p.Activate == nil {
		return fail(req, missing(req, "activate"))
	}
	d.policy.SetFeature(*p.Feature, *p.Activate)
	return ok(req, struct{}{})
}

func (d *Dispatcher) handleLowPowerStats(req protocol.Request) protocol.Response {
	states, status := d.policy.PlatformLowPowerStats()
	return ok(req, protocol.LowPowerStatsResult{States: states, Status: status})
}

func (d *Dispatcher) handleGetFeature(req protocol.Request) protocol.Response {
	var p protocol.GetFeaturePayload
	if err := decode(req, &p); err != nil {
		return fail(req, err)
	}
	if p.Feature == nil {
		return fail(req, missing(req, "feature"))
	}
	return ok(req, protocol.FeatureResult{Value: d.policy.Feature(*p.Feature)})
}

// handleSetProfile forwards numeric profiles the policy does not know;
// the policy ignores them.
func (d *Dispatcher) handleSetProfile(req protocol.Request) protocol.Response {
	var p protocol.SetProfilePayload
	if err := decode(req, &p); err != nil {
		return fail(req, err)
	}
	if p.Profile == nil {
		return fail(req, missing(req, "profile"))
	}
	d.policy.SetProfile(*p.Profile)
	return ok(req, struct{}{})
}

// decode strictly unmarshals a JSON object payload: unknown keys and a
// null payload are rejected.
func decode(req protocol.Request, v interface{}) error {
	raw := bytes.TrimSpace(req.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("%s: missing payload", req.Type)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", req.Type, err)
	}
	return nil
}

func missing(req protocol.Request, field string) error {
	return fmt.Errorf("%s: missing required field %q", req.Type, field)
}

func ok(req protocol.Request, payload interface{}) protocol.Response {
	return protocol.Response{ID: req.ID, Type: req.Type + "_result", Success: true, Payload: payload}
}

func fail(req protocol.Request, err error) protocol.Response {
	return protocol.Response{ID: req.ID, Type: req.Type + "_result", Success: false, Payload: protocol.ErrorPayload{Error: err.Error()}}
}
