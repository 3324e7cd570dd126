package catch

import "testing"

func TestAutopilotChasesLowestBone(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))
	s.Start()
	s.objects = []Object{
		{ID: "high", Kind: KindBone, X: 300, Y: 0},
		{ID: "low", Kind: KindBone, X: 40, Y: 400},
	}

	pilot := Autopilot{Step: 20}
	for i := 0; i < 20; i++ {
		pilot.Steer(s)
	}
	// Bone center 75 puts the dog at 10
	if s.PlayerX() != 10 {
		t.Errorf("PlayerX = %g, expected 10", s.PlayerX())
	}
}

func TestAutopilotStepLimit(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))
	s.Start()
	s.objects = []Object{{Kind: KindBone, X: 8, Y: 400}}

	Autopilot{Step: 20}.Steer(s)
	if s.PlayerX() != 110 {
		t.Errorf("PlayerX after one step = %g, expected 110", s.PlayerX())
	}
}

func TestAutopilotDodgesHazard(t *testing.T) {
	s := newTestSession(&fakeProgression{}, newSeqRand(0.1))
	s.Start()
	geo := s.Geometry()
	// Hazard right above the centered dog, left of center
	s.objects = []Object{{Kind: KindTrash, X: 140, Y: geo.PlayerY - 50}}

	for i := 0; i < 30; i++ {
		Autopilot{Step: 20}.Steer(s)
	}
	dog := s.player.Bounds(geo)
	if s.objects[0].Bounds(geo).Intersects(dog) {
		t.Errorf("dog at %g still under the hazard", s.PlayerX())
	}
}
