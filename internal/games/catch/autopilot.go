package catch

// Autopilot steers the dog for headless runs: it chases the lowest bone that
// is still above the dog and sidesteps hazards about to land on it.
type Autopilot struct {
	// Step is the largest move per tick, in reference units.
	Step float64
}

// Steer moves the dog one tick toward its target.
func (a Autopilot) Steer(s *Session) {
	geo := s.Geometry()
	if !geo.Measured() {
		return
	}
	snap := s.Snapshot()
	target, ok := a.target(snap, geo)
	if !ok {
		return
	}

	step := a.Step * geo.Scale
	dx := target - snap.PlayerX
	if step > 0 {
		dx = max(-step, min(step, dx))
	}
	s.Nudge(dx)
}

func (a Autopilot) target(snap Snapshot, geo Geometry) (float64, bool) {
	var (
		best     Object
		found    bool
		playerX  = snap.PlayerX
		dangerAt = geo.PlayerY - 4*geo.HazardH
	)

	for _, o := range snap.Objects {
		if o.Kind.Hazard() {
			continue
		}
		if o.Y+geo.BoneH > geo.PlayerY+geo.PlayerH {
			continue // already past the dog
		}
		if !found || o.Y > best.Y {
			best, found = o, true
		}
	}

	x := playerX
	if found {
		x = best.X + geo.BoneW/2 - geo.PlayerW/2
	}

	// Sidestep a hazard that would land on the target spot.
	for _, o := range snap.Objects {
		if !o.Kind.Hazard() || o.Y < dangerAt {
			continue
		}
		box := o.Bounds(geo)
		if box.X < x+geo.PlayerW && x < box.Right() {
			if box.X+box.W/2 > geo.FieldW/2 {
				x = box.X - geo.PlayerW - geo.Margin
			} else {
				x = box.Right() + geo.Margin
			}
			found = true
		}
	}
	return geo.ClampX(x), found
}
