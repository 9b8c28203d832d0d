package controllers

import "sync"

const statsStripes = 64

// statsGuard orders cache fills against track invalidations per fid. A read
// may only fill the cache if no track for its fid landed since the read
// began.
type statsGuard struct {
	stripes [statsStripes]struct {
		mu  sync.Mutex
		gen uint64
	}
}

func (g *statsGuard) stripe(fid int64) int {
	return int(uint64(fid) % statsStripes)
}

func (g *statsGuard) generation(fid int64) uint64 {
	s := &g.stripes[g.stripe(fid)]
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// invalidate bumps the generation of fid and runs drop under the stripe lock.
func (g *statsGuard) invalidate(fid int64, drop func()) {
	s := &g.stripes[g.stripe(fid)]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	drop()
}

// fill runs set only if the generation of fid is still gen.
func (g *statsGuard) fill(fid int64, gen uint64, set func()) bool {
	s := &g.stripes[g.stripe(fid)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	set()
	return true
}
