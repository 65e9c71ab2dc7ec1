package power

// TouchController arms and disarms the touchscreen double-tap-to-wake
// gesture. Implementations are fire-and-forget: failures are logged by
// the implementation and never reported to the policy.
type TouchController interface {
	// Init performs one-time driver setup. Returns an error if the
	// controller is unavailable; callers should treat this as
	// non-fatal (log and continue).
	Init() error

	EnableDoubleTap()
	DisableDoubleTap()
}

// NewTouchController returns a platform-appropriate TouchController
// driving the touchscreen command node at cmdPath.
// See touch_linux.go, touch_other.go.
func NewTouchController(nodes NodeWriter, cmdPath string) TouchController {
	return newTouchController(nodes, cmdPath)
}
