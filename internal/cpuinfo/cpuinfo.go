package cpuinfo

import (
	"log/slog"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Core is one logical CPU as reported by the kernel.
type Core struct {
	CPU       int32   `json:"cpu"`
	ModelName string  `json:"model_name"`
	MaxMhz    float64 `json:"max_mhz"`
}

// Snapshot is the CPU inventory shown by probe and the status endpoint.
type Snapshot struct {
	LogicalCores  int     `json:"logical_cores"`
	PhysicalCores int     `json:"physical_cores"`
	UsagePercent  float64 `json:"usage_percent"`
	Cores         []Core  `json:"cores"`
}

// Collect gathers the CPU inventory. Individual probes that fail are
// logged and left zero; only a failed core listing is an error.
func Collect() (*Snapshot, error) {
	infos, err := cpu.Info()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	for _, info := range infos {
		snap.Cores = append(snap.Cores, Core{
			CPU:       info.CPU,
			ModelName: info.ModelName,
			MaxMhz:    info.Mhz,
		})
	}

	if n, err := cpu.Counts(true); err != nil {
		slog.Warn("could not get logical core count", "err", err)
	} else {
		snap.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err != nil {
		slog.Warn("could not get physical core count", "err", err)
	} else {
		snap.PhysicalCores = n
	}
	if pct, err := cpu.Percent(0, false); err != nil || len(pct) == 0 {
		slog.Warn("could not get CPU usage", "err", err)
	} else {
		snap.UsagePercent = pct[0]
	}

	return snap, nil
}

// KHzToMHz converts a cpufreq node value to MHz.
func KHzToMHz(khz int64) float64 {
	return float64(khz) / 1000
}
