//go:build !linux

package power

type noopTouchController struct{}

func newTouchController(NodeWriter, string) TouchController {
	return &noopTouchController{}
}

func (n *noopTouchController) Init() error       { return nil }
func (n *noopTouchController) EnableDoubleTap()  {}
func (n *noopTouchController) DisableDoubleTap() {}
