package optimizer

import (
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/vicinity"
)

// bytesPerBoxConfigurationOverhead approximates BoxConfigurationSet's
// per-slot hash overhead: the slot header plus an inline copy of the
// bitset backing each stored configuration.
const bytesPerBoxConfigurationOverhead = 24

// bytesPerConfiguration returns boardstore.Storage's footprint per box
// configuration for a search needing the given number of storage axes
// (1 or 2) over a level with playerCount player positions. Both the
// forward and backward planes are always allocated regardless of
// whether the objective is bidirectional, so the byte cost always
// counts both.
func bytesPerConfiguration(axes, playerCount int) int64 {
	const bytesPerSlot = 4
	return 2*bytesPerSlot*int64(playerCount)*int64(axes) + bytesPerBoxConfigurationOverhead
}

// availableMemoryBytes reports the system's currently available
// memory, grounded on the same gopsutil call arx-backend's metrics
// endpoint uses for its own memory report. A detection failure (e.g.
// an unsupported platform) is reported as unknown (0) rather than
// guessed at.
func availableMemoryBytes() int64 {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return int64(v.Available)
}

// estimateMaxBoxConfigurations computes AUTO's max-box-configurations
// count: available memory divided by the most expensive of the
// objectives a round will run, clamped by boardstore's box-lines
// safety cap when any objective orders on box-lines.
func estimateMaxBoxConfigurations(objectives []vicinity.Objective, playerCount int) (int, error) {
	available := availableMemoryBytes()
	if available <= 0 {
		return 0, ErrOutOfMemory
	}

	best := -1
	for _, o := range objectives {
		axes := 1
		if o.AxisSensitive {
			axes = 2
		}
		perCfg := bytesPerConfiguration(axes, playerCount)
		n := int(available / perCfg)
		if o.Primary == vicinity.PrimaryBoxLines {
			if limit := boardstore.MaxBoxLineCapacity(playerCount); n > limit {
				n = limit
			}
		}
		if best == -1 || n < best {
			best = n
		}
	}
	if best <= 0 {
		return 0, ErrOutOfMemory
	}
	return best, nil
}
