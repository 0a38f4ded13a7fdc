// Package system reports host and process state using gopsutil.
package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/pkg/logger"
	"github.com/doeshing/termbot/internal/ports"
)

// Inspector implements ports.SystemInspector.
type Inspector struct {
	diskPath     string
	toolsToCheck []string
	logger       ports.Logger
}

// NewInspector builds an inspector that measures disk usage of the root volume.
func NewInspector(log ports.Logger) *Inspector {
	if log == nil {
		log = logger.NewNop()
	}
	return &Inspector{
		diskPath:     rootVolume(),
		toolsToCheck: []string{"docker", "kubectl", "git", "npm", "yarn", "pnpm", "python", "python3", "go", "node", "cargo", "make"},
		logger:       log,
	}
}

// Info gathers the /sysinfo snapshot. Host and CPU model lookups degrade to
// runtime values; memory and disk failures are returned.
func (i *Inspector) Info(ctx context.Context) (domain.SystemInfo, error) {
	info := domain.SystemInfo{
		OS:             displayOS(runtime.GOOS),
		Architecture:   runtime.GOARCH,
		Shell:          detectShell(),
		User:           currentUser(),
		AvailableTools: i.detectTools(),
	}

	if hostInfo, err := host.InfoWithContext(ctx); err == nil {
		info.OSVersion = firstNonEmpty(hostInfo.PlatformVersion, hostInfo.KernelVersion)
		if hostInfo.KernelArch != "" {
			info.Architecture = hostInfo.KernelArch
		}
	} else {
		i.logger.Debug("host info unavailable", map[string]interface{}{"error": err.Error()})
	}

	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		info.Processor = strings.TrimSpace(cpus[0].ModelName)
	}
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil || cores == 0 {
		cores = runtime.NumCPU()
	}
	info.CPUCores = cores

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.SystemInfo{}, fmt.Errorf("read memory: %w", err)
	}
	info.MemoryTotal = vm.Total

	usage, err := disk.UsageWithContext(ctx, i.diskPath)
	if err != nil {
		return domain.SystemInfo{}, fmt.Errorf("read disk usage of %s: %w", i.diskPath, err)
	}
	info.DiskUsedPct = usage.UsedPercent

	wd, err := os.Getwd()
	if err != nil {
		return domain.SystemInfo{}, fmt.Errorf("working directory: %w", err)
	}
	info.WorkingDir = wd
	return info, nil
}

// TopProcesses returns up to limit processes ordered by CPU usage, highest first.
// Processes that exit or deny access while being sampled are skipped.
func (i *Inspector) TopProcesses(ctx context.Context, limit int) ([]domain.ProcessInfo, error) {
	if limit <= 0 {
		limit = domain.DefaultTopProcesses
	}
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	out := make([]domain.ProcessInfo, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			skipped++
			continue
		}
		cpuPct, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			cpuPct = 0
		}
		out = append(out, domain.ProcessInfo{PID: p.Pid, Name: name, CPUPercent: cpuPct})
	}
	i.logger.Debug("sampled processes", map[string]interface{}{"count": len(out), "skipped": skipped})

	return topByCPU(out, limit), nil
}

func topByCPU(procs []domain.ProcessInfo, limit int) []domain.ProcessInfo {
	sort.SliceStable(procs, func(a, b int) bool {
		return procs[a].CPUPercent > procs[b].CPUPercent
	})
	if len(procs) > limit {
		procs = procs[:limit]
	}
	return procs
}

func (i *Inspector) detectTools() []string {
	var available []string
	for _, tool := range i.toolsToCheck {
		if _, err := exec.LookPath(tool); err == nil {
			available = append(available, tool)
		}
	}
	sort.Strings(available)
	return available
}

func displayOS(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	if comspec := os.Getenv("COMSPEC"); comspec != "" {
		return filepath.Base(comspec)
	}
	return "unknown"
}

func currentUser() string {
	return firstNonEmpty(os.Getenv("USER"), os.Getenv("USERNAME"))
}

func rootVolume() string {
	if runtime.GOOS == "windows" {
		return firstNonEmpty(os.Getenv("SystemDrive"), "C:") + `\`
	}
	return "/"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ ports.SystemInspector = (*Inspector)(nil)
