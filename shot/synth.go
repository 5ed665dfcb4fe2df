package shot

import (
	"math"
	"strconv"
)

// SynthOptions controls the demo shot generator
type SynthOptions struct {
	Table     Table
	Balls     int     // object balls racked at the foot spot, cue excluded
	Radius    float64 // ball radius
	Speed     float64 // initial cue speed
	Angle     float64 // cue heading in radians, 0 = +x, pi/2 = +y
	Decel     float64 // rolling deceleration
	Duration  float64 // seconds of recorded motion
	FrameRate float64 // samples per second
}

// DefaultSynthOptions returns a break-like shot on the default table
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{
		Table:     DefaultTable(),
		Balls:     10,
		Radius:    0.028575,
		Speed:     4.5,
		Angle:     math.Pi/2 + 0.02,
		Decel:     0.9,
		Duration:  6,
		FrameRate: 30,
	}
}

type body struct {
	x, y   float64
	vx, vy float64
}

// Synthesize produces a deterministic kinematic shot: the cue ball travels
// up the table and each object ball is given a spread of the cue's speed
// when the cue first passes it. Balls slide with constant deceleration and
// reflect off the cushions. It stands in for a real simulator in demos and
// tests; it does not model collisions faithfully.
func Synthesize(opts SynthOptions) *Recorded {
	t := opts.Table
	r := opts.Radius
	n := int(math.Round(opts.Duration*opts.FrameRate)) + 1
	if n < 1 {
		n = 1
	}
	dt := 1 / opts.FrameRate

	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
	}

	ids := make([]string, 0, opts.Balls+1)
	bodies := make([]*body, 0, opts.Balls+1)

	ids = append(ids, "cue")
	bodies = append(bodies, &body{
		x:  t.W / 2,
		y:  t.L / 4,
		vx: opts.Speed * math.Cos(opts.Angle),
		vy: opts.Speed * math.Sin(opts.Angle),
	})

	// Triangle rack apex on the foot spot, rows growing away from the cue
	row, col := 0, 0
	for i := 0; i < opts.Balls; i++ {
		if col > row {
			row++
			col = 0
		}
		x := t.W/2 + (float64(col)-float64(row)/2)*2*r
		y := 3*t.L/4 + float64(row)*math.Sqrt(3)*r
		ids = append(ids, strconv.Itoa(i+1))
		bodies = append(bodies, &body{x: x, y: y})
		col++
	}

	histories := make(map[string]History, len(ids))
	for _, id := range ids {
		histories[id] = make(History, n)
	}

	struck := make([]bool, len(bodies))
	for f := 0; f < n; f++ {
		for i, b := range bodies {
			histories[ids[i]][f] = State{
				R: [3]float64{b.x, b.y, r},
				V: [3]float64{b.vx, b.vy, 0},
			}
		}
		if f == n-1 {
			break
		}

		cue := bodies[0]
		x0, y0 := cue.x, cue.y
		for _, b := range bodies {
			step(b, t, r, opts.Decel, dt)
		}

		// Sweep the cue's path so fast frames cannot tunnel through the rack
		for i := 1; i < len(bodies); i++ {
			b := bodies[i]
			if struck[i] || segmentDistance(b.x, b.y, x0, y0, cue.x, cue.y) > 2*r {
				continue
			}
			struck[i] = true
			speed := math.Hypot(cue.vx, cue.vy) * 0.8
			heading := math.Atan2(b.y-y0, b.x-x0) + float64(i%3-1)*0.15
			b.vx = speed * math.Cos(heading)
			b.vy = speed * math.Sin(heading)
			cue.vx *= 0.6
			cue.vy *= 0.6
		}
	}

	balls := make([]Ball, len(ids))
	for i, id := range ids {
		balls[i] = Ball{ID: id, Radius: r}
	}
	return NewRecorded(t, balls, times, histories)
}

// step advances a body by dt with constant deceleration and cushion bounce
func step(b *body, t Table, r, decel, dt float64) {
	speed := math.Hypot(b.vx, b.vy)
	if speed == 0 {
		return
	}
	next := speed - decel*dt
	if next <= 0 {
		b.vx, b.vy = 0, 0
		return
	}
	b.vx *= next / speed
	b.vy *= next / speed

	b.x += b.vx * dt
	b.y += b.vy * dt

	if b.x < r {
		b.x, b.vx = 2*r-b.x, -b.vx
	} else if b.x > t.W-r {
		b.x, b.vx = 2*(t.W-r)-b.x, -b.vx
	}
	if b.y < r {
		b.y, b.vy = 2*r-b.y, -b.vy
	} else if b.y > t.L-r {
		b.y, b.vy = 2*(t.L-r)-b.y, -b.vy
	}
}

// segmentDistance is the distance from point p to segment ab
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	u := ((px-ax)*dx + (py-ay)*dy) / l2
	u = math.Max(0, math.Min(1, u))
	return math.Hypot(px-(ax+u*dx), py-(ay+u*dy))
}
