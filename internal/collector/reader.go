// Package collector reads the host it runs on and reports it to a machine-monitor server.
package collector

import (
	"context"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/openshift-assisted/machine-monitor/internal/domain/entity"
)

// Reader returns the data object of the next snapshot.
type Reader interface {
	Read(ctx context.Context) (map[string]any, error)
}

// HostReader reads disk utilization and host information with gopsutil.
// Disk utilization is mandatory, the rest is best effort.
type HostReader struct {
	diskPath string
}

func NewHostReader(diskPath string) HostReader {
	if diskPath == "" {
		diskPath = "/"
	}

	return HostReader{
		diskPath: diskPath,
	}
}

func (h HostReader) Read(ctx context.Context) (map[string]any, error) {
	usage, err := disk.UsageWithContext(ctx, h.diskPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage of %s: %w", h.diskPath, err)
	}

	systemInfo := map[string]any{}

	if info, err := host.InfoWithContext(ctx); err == nil {
		systemInfo["hostname"] = info.Hostname
		systemInfo["os"] = info.OS
		systemInfo["platform"] = info.Platform
		systemInfo["kernel_version"] = info.KernelVersion
		systemInfo["uptime_seconds"] = info.Uptime
	}

	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		systemInfo["processors"] = count
	}

	if percent, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percent) > 0 {
		systemInfo["cpu_percent"] = round(percent[0])
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		systemInfo["memory_percent"] = round(vm.UsedPercent)
	}

	return map[string]any{
		entity.FieldDiskVolume: round(usage.UsedPercent),
		"system_info":          systemInfo,
	}, nil
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}
