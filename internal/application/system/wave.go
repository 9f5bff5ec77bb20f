package system

// SpawnEntry is one scheduled spawn of a wave plan
type SpawnEntry struct {
	Time  float64 // absolute level time
	Enemy string
}

// WavePlan is the flattened spawn schedule of a level.
// Entries are ordered by Time; each index is emitted at most once.
type WavePlan struct {
	entries []SpawnEntry
	spawned map[int]bool
}

// BuildWavePlan flattens waves into absolute spawn times.
// Wave k starts gap seconds after the last spawn of wave k-1; the first wave starts at 0.
func BuildWavePlan(waves []Wave, gap float64) *WavePlan {
	if gap < 0 {
		gap = 0
	}
	var entries []SpawnEntry
	start := 0.0
	for _, w := range waves {
		for i := 0; i < w.Count; i++ {
			entries = append(entries, SpawnEntry{
				Time:  start + float64(i)*w.Interval,
				Enemy: w.Enemy,
			})
		}
		if len(entries) > 0 {
			start = entries[len(entries)-1].Time + gap
		}
	}
	return &WavePlan{
		entries: entries,
		spawned: make(map[int]bool, len(entries)),
	}
}

// Due marks and returns every unspawned entry with Time <= elapsed, in plan order
func (p *WavePlan) Due(elapsed float64) []SpawnEntry {
	var due []SpawnEntry
	for i, e := range p.entries {
		if e.Time > elapsed {
			// entries are sorted; nothing later can be due
			break
		}
		if p.spawned[i] {
			continue
		}
		p.spawned[i] = true
		due = append(due, e)
	}
	return due
}

// Len returns the number of entries
func (p *WavePlan) Len() int {
	return len(p.entries)
}

// Entry returns entry i
func (p *WavePlan) Entry(i int) SpawnEntry {
	return p.entries[i]
}

// Exhausted reports whether every entry has been spawned
func (p *WavePlan) Exhausted() bool {
	return len(p.spawned) == len(p.entries)
}

// Remaining is the number of entries not yet spawned
func (p *WavePlan) Remaining() int {
	return len(p.entries) - len(p.spawned)
}

// Spawned returns the spawned indices in ascending order
func (p *WavePlan) Spawned() []int {
	out := make([]int, 0, len(p.spawned))
	for i := range p.entries {
		if p.spawned[i] {
			out = append(out, i)
		}
	}
	return out
}

// Restore replaces the spawned set. Out-of-range indices are dropped;
// the number of dropped indices is returned.
func (p *WavePlan) Restore(indices []int) int {
	p.spawned = make(map[int]bool, len(p.entries))
	dropped := 0
	for _, i := range indices {
		if i < 0 || i >= len(p.entries) {
			dropped++
			continue
		}
		p.spawned[i] = true
	}
	return dropped
}

// WaveAt returns the 0-based wave index the next pending entry belongs to,
// or the wave count when the plan is exhausted.
func WaveAt(waves []Wave, plan *WavePlan) int {
	idx := 0
	for w, wave := range waves {
		for i := 0; i < wave.Count; i++ {
			if !plan.spawned[idx] {
				return w
			}
			idx++
		}
	}
	return len(waves)
}
