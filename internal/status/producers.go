// Package status collects system status segments and assembles them into
// the colored content runs the bar renders.
package status

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Producer yields the current text of one status segment. Collect is called
// once per refresh tick from the render loop; producers must not block
// longer than a fraction of the refresh interval.
type Producer interface {
	Name() string
	Collect() (string, error)
}

// ForNames resolves configured segment names to producers, preserving
// order.
func ForNames(names []string) ([]Producer, error) {
	producers := make([]Producer, 0, len(names))
	for _, name := range names {
		switch name {
		case "clock":
			producers = append(producers, Clock{Format: "Mon 02 Jan 15:04"})
		case "hostname":
			producers = append(producers, Hostname{})
		case "cpu":
			producers = append(producers, CPUPercent{})
		case "memory":
			producers = append(producers, MemoryUsed{})
		case "load":
			producers = append(producers, LoadAverage{})
		default:
			return nil, fmt.Errorf("unknown segment %q", name)
		}
	}
	return producers, nil
}

// Clock renders the local time.
type Clock struct {
	Format string
}

func (Clock) Name() string { return "clock" }

func (c Clock) Collect() (string, error) {
	return time.Now().Format(c.Format), nil
}

// Hostname renders the machine name.
type Hostname struct{}

func (Hostname) Name() string { return "hostname" }

func (Hostname) Collect() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: %w", err)
	}
	return name, nil
}

// CPUPercent renders the total CPU utilization since the previous call.
type CPUPercent struct{}

func (CPUPercent) Name() string { return "cpu" }

func (CPUPercent) Collect() (string, error) {
	// Interval 0 measures against the previous call, so the first tick
	// reads 0% and settles from the second on.
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return "", fmt.Errorf("cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return "", fmt.Errorf("cpu percent: no data")
	}
	return fmt.Sprintf("cpu %2.0f%%", percents[0]), nil
}

// MemoryUsed renders the used physical memory percentage.
type MemoryUsed struct{}

func (MemoryUsed) Name() string { return "memory" }

func (MemoryUsed) Collect() (string, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return "", fmt.Errorf("virtual memory: %w", err)
	}
	return fmt.Sprintf("mem %2.0f%%", vm.UsedPercent), nil
}

// LoadAverage renders the one-minute load average.
type LoadAverage struct{}

func (LoadAverage) Name() string { return "load" }

func (LoadAverage) Collect() (string, error) {
	avg, err := load.Avg()
	if err != nil {
		return "", fmt.Errorf("load average: %w", err)
	}
	return fmt.Sprintf("load %.2f", avg.Load1), nil
}
