//go:build linux

package power

import (
	"fmt"
	"log/slog"
	"sync"
)

const (
	// Samsung TSP "always on touch" command, parsed by the driver as
	// "<name>,<arg>".
	cmdDoubleTapEnable  = "aot_enable,1"
	cmdDoubleTapDisable = "aot_enable,0"
)

type tspController struct {
	nodes   NodeWriter
	cmdPath string

	mu    sync.Mutex
	ready bool
}

func newTouchController(nodes NodeWriter, cmdPath string) TouchController {
	return &tspController{nodes: nodes, cmdPath: cmdPath}
}

func (t *tspController) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ready {
		return nil // already initialized
	}
	if !t.nodes.Exists(t.cmdPath) {
		return fmt.Errorf("touchscreen command node %s not found", t.cmdPath)
	}
	t.ready = true
	return nil
}

func (t *tspController) EnableDoubleTap() {
	t.send(cmdDoubleTapEnable)
}

func (t *tspController) DisableDoubleTap() {
	t.send(cmdDoubleTapDisable)
}

func (t *tspController) send(cmd string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready {
		slog.Warn("touchscreen controller not initialized", "cmd", cmd)
		return
	}
	t.nodes.Write(t.cmdPath, cmd)
}
