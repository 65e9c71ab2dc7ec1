package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/exynos7904/powerd/internal/cpuinfo"
	"github.com/exynos7904/powerd/internal/sysfs"
	"github.com/exynos7904/powerd/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show which control nodes exist on this device",
	Long: `Checks every control node of the platform table without writing to
any of them, and prints the CPU inventory. Useful to verify a device
(or a --sysfs-root fixture) before running serve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Banner(version, platformName)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		nodes := sysfs.New(cfg.SysfsRoot)
		plat := cfg.Platform

		fmt.Fprintln(os.Stderr)
		ui.KeyValue("Sysfs root", nodes.Root())
		ui.Separator()
		for _, n := range plat.InteractiveNodes {
			ui.Node(n, nodes.Exists(n), "interactive")
		}
		ui.Node(plat.TouchCommandNode, nodes.Exists(plat.TouchCommandNode), "touchscreen command")

		if v, err := nodes.Read(plat.CPUMaxFreqNode); err != nil {
			ui.Node(plat.CPUMaxFreqNode, false, "cpu cap")
		} else if khz, perr := strconv.ParseInt(v, 10, 64); perr == nil {
			ui.Node(plat.CPUMaxFreqNode, true, fmt.Sprintf("cpu cap %.0f MHz", cpuinfo.KHzToMHz(khz)))
		} else {
			ui.Node(plat.CPUMaxFreqNode, true, "cpu cap "+v)
		}

		ui.Separator()
		snap, err := cpuinfo.Collect()
		if err != nil {
			ui.Warn("CPU inventory unavailable: %v", err)
			return nil
		}
		ui.KeyValue("Cores", fmt.Sprintf("%d logical, %d physical", snap.LogicalCores, snap.PhysicalCores))
		ui.KeyValue("Usage", fmt.Sprintf("%.1f%%", snap.UsagePercent))
		for _, c := range snap.Cores {
			ui.KeyValue("cpu"+strconv.Itoa(int(c.CPU)), fmt.Sprintf("%s %s", c.ModelName, ui.Dim(fmt.Sprintf("%.0f MHz", c.MaxMhz))))
		}
		return nil
	},
}
