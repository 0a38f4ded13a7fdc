package domain

// SystemInfo is the snapshot reported by /sysinfo.
type SystemInfo struct {
	OS             string
	OSVersion      string
	Architecture   string
	Processor      string
	CPUCores       int
	MemoryTotal    uint64
	DiskUsedPct    float64
	WorkingDir     string
	Shell          string
	User           string
	AvailableTools []string
}

// ProcessInfo is one row of /processes.
type ProcessInfo struct {
	PID        int32
	Name       string
	CPUPercent float64
}
