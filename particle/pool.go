// Package particle stores short-lived emissions in a fixed-capacity ring
package particle

import (
	"time"

	"github.com/lixenwraith/perimeter/core"
)

// Particle is a single smoke puff or storm spark, immutable after spawn
type Particle struct {
	ID        uint64
	X, Y      float64
	Heading   float64
	CreatedAt time.Time
	Scale     float64
	DriftX    float64 // Units per second
	DriftY    float64
	Color     core.RGB
	Shape     core.ParticleShape
}

// Pool is a ring buffer of particles with a monotonic write cursor
// Slot identity carries no meaning: a particle is active only by age
type Pool struct {
	slots    []Particle
	cursor   uint64 // Total spawned; next slot is cursor % capacity
	lifetime time.Duration
}

// NewPool creates a pool; capacity below 1 is raised to 1
func NewPool(capacity int, lifetime time.Duration) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		slots:    make([]Particle, capacity),
		lifetime: lifetime,
	}
}

// Spawn writes a particle over the oldest slot and returns its assigned ID
func (p *Pool) Spawn(pt Particle) uint64 {
	p.cursor++
	pt.ID = p.cursor
	p.slots[(p.cursor-1)%uint64(len(p.slots))] = pt
	return pt.ID
}

// Capacity returns the fixed slot count
func (p *Pool) Capacity() int {
	return len(p.slots)
}

// Len returns the number of occupied slots, never above capacity
func (p *Pool) Len() int {
	if p.cursor < uint64(len(p.slots)) {
		return int(p.cursor)
	}
	return len(p.slots)
}

// Spawned returns the total number of particles ever written
func (p *Pool) Spawned() uint64 {
	return p.cursor
}

// Lifetime returns the age after which a particle is inactive
func (p *Pool) Lifetime() time.Duration {
	return p.lifetime
}

// Age returns the normalized age of a particle in [0,1], ok is false once expired or not yet born
func (p *Pool) Age(pt *Particle, now time.Time) (float64, bool) {
	if pt.ID == 0 || p.lifetime <= 0 {
		return 0, false
	}
	age := now.Sub(pt.CreatedAt)
	if age < 0 || age >= p.lifetime {
		return 0, false
	}
	return float64(age) / float64(p.lifetime), true
}

// Slots iterates every slot in oldest-to-newest order with its activity at now
func (p *Pool) Slots(now time.Time, fn func(pt *Particle, age float64, active bool)) {
	n := p.Len()
	start := p.cursor - uint64(n)
	for i := 0; i < n; i++ {
		pt := &p.slots[(start+uint64(i))%uint64(len(p.slots))]
		age, active := p.Age(pt, now)
		fn(pt, age, active)
	}
}

// ActiveCount returns the number of particles younger than the lifetime
func (p *Pool) ActiveCount(now time.Time) int {
	count := 0
	p.Slots(now, func(_ *Particle, _ float64, active bool) {
		if active {
			count++
		}
	})
	return count
}

// Reset empties the pool without reallocating
func (p *Pool) Reset() {
	clear(p.slots)
	p.cursor = 0
}
