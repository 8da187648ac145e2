package game

import "testing"

func TestClearBaseScores(t *testing.T) {
	tests := []struct {
		name  string
		clear ClearType
		want  uint64
	}{
		{"single", Regular(1), 100},
		{"double", Regular(2), 300},
		{"triple", Regular(3), 500},
		{"tetris", Regular(4), 800},
		{"tspin none", TSpin(0), 400},
		{"tspin single", TSpin(1), 800},
		{"tspin double", TSpin(2), 1200},
		{"tspin triple", TSpin(3), 1600},
		{"mini none", MiniTSpin(0), 100},
		{"mini single", MiniTSpin(1), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScore()
			s.AddClear(tt.clear, false)
			if s.Points != tt.want {
				t.Errorf("points = %d, want %d", s.Points, tt.want)
			}
		})
	}
}

func TestBackToBackDoubling(t *testing.T) {
	s := NewScore()

	s.AddClear(Regular(4), false)
	if s.Points != 800 {
		t.Fatalf("first Tetris = %d, want 800", s.Points)
	}
	if !s.BackToBack {
		t.Fatal("Tetris should arm back-to-back")
	}

	// Second Tetris: 800*1.5 b2b + 50 combo bonus (combo=1, level 1).
	s.AddClear(Regular(4), false)
	if s.Points != 800+1200+50 {
		t.Errorf("after second Tetris points = %d, want %d", s.Points, 800+1200+50)
	}
	if s.Combo != 1 {
		t.Errorf("combo = %d, want 1", s.Combo)
	}
}

func TestBackToBackBrokenByPlainClear(t *testing.T) {
	s := NewScore()
	s.AddClear(Regular(4), false)
	s.AddClear(Regular(1), false)
	if s.BackToBack {
		t.Error("a plain single should break back-to-back")
	}
}

func TestBackToBackSurvivesLinelessTSpin(t *testing.T) {
	s := NewScore()
	s.AddClear(Regular(4), false)
	s.AddClear(TSpin(0), false)
	if !s.BackToBack {
		t.Error("a lineless T-spin is difficult and keeps back-to-back")
	}
}

func TestResetComboLeavesBackToBack(t *testing.T) {
	s := NewScore()
	s.AddClear(Regular(4), false)
	s.AddClear(Regular(1), false)

	s.ResetCombo()
	if s.Combo != -1 {
		t.Errorf("combo = %d, want -1", s.Combo)
	}
	// ResetCombo never touches the back-to-back flag.
	s2 := NewScore()
	s2.AddClear(Regular(4), false)
	s2.ResetCombo()
	if !s2.BackToBack {
		t.Error("ResetCombo must not clear back-to-back")
	}
}

func TestComboBonus(t *testing.T) {
	s := NewScore()
	s.AddClear(Regular(1), false) // combo 0, no bonus
	s.AddClear(Regular(1), false) // combo 1, +50
	if s.Points != 100+100+50 {
		t.Errorf("points = %d, want %d", s.Points, 250)
	}
}

func TestLevelUpEveryTenLines(t *testing.T) {
	s := NewScore()
	for i := 0; i < 10; i++ {
		s.AddClear(Regular(1), false)
	}
	if s.Level != 2 {
		t.Errorf("level = %d, want 2 after 10 lines", s.Level)
	}
}

func TestStartingLevelFloor(t *testing.T) {
	s := NewScore()
	s.SetStartingLevel(5)
	if s.Level != 5 {
		t.Fatalf("level = %d, want 5", s.Level)
	}
	s.AddClear(Regular(1), false)
	if s.Level != 5 {
		t.Errorf("one line should not drop the level below the floor, got %d", s.Level)
	}
	if s.Points != 500 {
		t.Errorf("single at level 5 = %d, want 500", s.Points)
	}
}

func TestAllClearBonus(t *testing.T) {
	s := NewScore()
	s.AddClear(Regular(1), true)
	// 100 base + 800 all-clear, level 1.
	if s.Points != 900 {
		t.Errorf("points = %d, want 900", s.Points)
	}
}

func TestDropScoring(t *testing.T) {
	s := NewScore()
	s.AddSoftDrop(7)
	s.AddHardDrop(10)
	if s.Points != 7+20 {
		t.Errorf("points = %d, want 27", s.Points)
	}
}

func TestActionStrings(t *testing.T) {
	s := NewScore()
	if got := s.AddClear(Regular(4), false); got != "Tetris" {
		t.Errorf("action = %q, want Tetris", got)
	}
	if got := s.AddClear(Regular(4), false); got != "B2B Tetris Combo x1" {
		t.Errorf("action = %q, want B2B Tetris Combo x1", got)
	}
}

func TestFallSpeedDecreases(t *testing.T) {
	s := NewScore()
	prev := s.FallSpeed()
	for level := 2; level <= 20; level++ {
		s.Lines = (level - 1) * 10
		s.Level = level
		speed := s.FallSpeed()
		if speed >= prev {
			t.Errorf("fall speed at level %d (%f) should be below level %d (%f)",
				level, speed, level-1, prev)
		}
		prev = speed
	}

	// Clamped past 20.
	s.Level = 30
	if s.FallSpeed() != prev {
		t.Error("fall speed should clamp at level 20")
	}
}
