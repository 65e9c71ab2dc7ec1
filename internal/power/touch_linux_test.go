//go:build linux

package power

import (
	"reflect"
	"testing"
)

func TestTSPControllerCommands(t *testing.T) {
	r := newRecorder("/sys/class/sec/tsp/cmd")
	tc := NewTouchController(r, "/sys/class/sec/tsp/cmd")
	if err := tc.Init(); err != nil {
		t.Fatal(err)
	}
	tc.EnableDoubleTap()
	tc.DisableDoubleTap()

	want := []string{"/sys/class/sec/tsp/cmd=aot_enable,1", "/sys/class/sec/tsp/cmd=aot_enable,0"}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
}

func TestTSPControllerWithoutNode(t *testing.T) {
	r := newRecorder()
	tc := NewTouchController(r, "/sys/class/sec/tsp/cmd")
	if err := tc.Init(); err == nil {
		t.Fatal("Init succeeded without command node")
	}
	tc.EnableDoubleTap()
	if len(r.events) != 0 {
		t.Fatalf("uninitialized controller wrote %v", r.events)
	}
}
