package storage

import (
	"path/filepath"
	"testing"

	"github.com/termtris/termtris/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, points := range []uint64{100, 500, 300} {
		if _, err := store.SaveScore(ScoreEntry{Mode: "marathon", Points: points, Lines: 10, Level: 2}); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}

	entries, err := store.TopScores("marathon", 2)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Points != 500 || entries[1].Points != 300 {
		t.Errorf("order = %d, %d; want 500, 300", entries[0].Points, entries[1].Points)
	}
	if entries[0].Mode != "marathon" || entries[0].Lines != 10 {
		t.Errorf("entry fields not persisted: %+v", entries[0])
	}
}

func TestScoresIsolatedByMode(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Mode: "marathon", Points: 900})
	store.SaveScore(ScoreEntry{Mode: "ultra", Points: 400})

	entries, err := store.TopScores("ultra", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 1 || entries[0].Points != 400 {
		t.Errorf("ultra scores = %+v, want the single 400 entry", entries)
	}
}

func TestBestSprints(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Mode: "sprint", Points: 4000, Lines: 40, DurationMs: 95_000})
	store.SaveScore(ScoreEntry{Mode: "sprint", Points: 3500, Lines: 40, DurationMs: 82_000})
	// Abandoned sprint, never finished.
	store.SaveScore(ScoreEntry{Mode: "sprint", Points: 1200, Lines: 22, DurationMs: 0})

	entries, err := store.BestSprints(10)
	if err != nil {
		t.Fatalf("BestSprints: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (unfinished excluded)", len(entries))
	}
	if entries[0].DurationMs != 82_000 {
		t.Errorf("fastest = %dms, want 82000", entries[0].DurationMs)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)
	points, err := store.HighScore("marathon")
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if points != 0 {
		t.Errorf("empty table high score = %d, want 0", points)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{Mode: "marathon", Points: 100})
	store.SaveScore(ScoreEntry{Mode: "ultra", Points: 200})

	if err := store.ClearScores("marathon"); err != nil {
		t.Fatalf("ClearScores: %v", err)
	}
	if points, _ := store.HighScore("marathon"); points != 0 {
		t.Error("marathon scores should be gone")
	}
	if points, _ := store.HighScore("ultra"); points != 200 {
		t.Error("other modes must survive the clear")
	}
}

func TestSaveMatchResult(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{
		MatchID:        "match-ABC123-1",
		Player1Session: "alice",
		Player2Session: "bob",
		Score1:         2400,
		Score2:         1800,
		WinnerSession:  "alice",
		EndReason:      "Match completed",
		DurationSecs:   143,
	})
	if err != nil {
		t.Fatalf("SaveMatchResult: %v", err)
	}

	records, err := store.RecentMatches(10)
	if err != nil {
		t.Fatalf("RecentMatches: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.WinnerSession != "alice" || r.Score1 != 2400 || r.DurationSecs != 143 {
		t.Errorf("record = %+v", r)
	}

	mine, err := store.PlayerMatches("bob", 10)
	if err != nil {
		t.Fatalf("PlayerMatches: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("bob's history has %d matches, want 1", len(mine))
	}
	none, err := store.PlayerMatches("carol", 10)
	if err != nil {
		t.Fatalf("PlayerMatches: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("carol's history has %d matches, want 0", len(none))
	}
}

func TestModeStats(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore(ScoreEntry{Mode: "marathon", Points: 100, Lines: 4})
	store.SaveScore(ScoreEntry{Mode: "marathon", Points: 700, Lines: 30})

	stats, err := store.GetModeStats("marathon")
	if err != nil {
		t.Fatalf("GetModeStats: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 700 || stats.TotalLines != 34 {
		t.Errorf("stats = %+v", stats)
	}
}
