package game

import (
	"errors"
	"testing"
)

// join is a test helper that adds a player and fails the test on error.
func join(t *testing.T, r *Room, id, name string) {
	t.Helper()
	if err := r.AddPlayer(id, name); err != nil {
		t.Fatalf("AddPlayer(%q, %q) = %v, want nil", id, name, err)
	}
}

func TestAddPlayerCapacity(t *testing.T) {
	r := New("ROOM1")
	for i, id := range []string{"p1", "p2", "p3", "p4"} {
		if err := r.AddPlayer(id, "player"); err != nil {
			t.Fatalf("AddPlayer #%d = %v, want nil", i+1, err)
		}
	}
	if err := r.AddPlayer("p5", "late"); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("AddPlayer on full room = %v, want ErrRoomFull", err)
	}
	if len(r.Players) != DefaultMaxPlayers {
		t.Fatalf("len(Players) = %d, want %d", len(r.Players), DefaultMaxPlayers)
	}
}

func TestAddPlayerRejections(t *testing.T) {
	r := New("ROOM1")
	if err := r.AddPlayer("p1", "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("AddPlayer with blank name = %v, want ErrEmptyName", err)
	}
	join(t, r, "p1", "alice")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v, want nil", err)
	}
	if err := r.AddPlayer("p2", "bob"); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("AddPlayer after start = %v, want ErrAlreadyStarted", err)
	}
}

func TestDuplicateNamesAllowed(t *testing.T) {
	r := New("ROOM1")
	join(t, r, "p1", "sam")
	join(t, r, "p2", "sam")
	if len(r.Players) != 2 {
		t.Fatalf("len(Players) = %d, want 2", len(r.Players))
	}
}

func TestStartPhaseRules(t *testing.T) {
	r := New("ROOM1")
	if err := r.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("Start on empty room = %v, want ErrNotEnoughPlayers", err)
	}
	join(t, r, "p1", "alice")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v, want nil", err)
	}
	if r.Phase != PhaseStarted {
		t.Fatalf("Phase = %q, want %q", r.Phase, PhaseStarted)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestStartMinPlayersConfigurable(t *testing.T) {
	r := New("ROOM1")
	r.MinPlayers = 2
	join(t, r, "p1", "alice")
	if err := r.Start(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("Start below MinPlayers = %v, want ErrNotEnoughPlayers", err)
	}
	join(t, r, "p2", "bob")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v, want nil", err)
	}
}

func TestMakeGuessRejections(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "p1", "alice")

	if _, err := r.MakeGuess("p1", "5678"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("guess before start = %v, want ErrNotStarted", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if _, err := r.MakeGuess("ghost", "5678"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("guess by unknown player = %v, want ErrPlayerNotFound", err)
	}
	if _, err := r.MakeGuess("p1", "123"); !errors.Is(err, ErrGuessFormat) {
		t.Fatalf("short guess = %v, want ErrGuessFormat", err)
	}
	if _, err := r.MakeGuess("p1", "1224"); !errors.Is(err, ErrGuessRepeat) {
		t.Fatalf("repeated-digit guess = %v, want ErrGuessRepeat", err)
	}
	if len(r.Players[0].Attempts) != 0 {
		t.Fatalf("rejected guesses recorded %d attempts, want 0", len(r.Players[0].Attempts))
	}

	if _, err := r.MakeGuess("p1", "1234"); err != nil {
		t.Fatalf("winning guess = %v, want nil", err)
	}
	if _, err := r.MakeGuess("p1", "5678"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("guess after room ended = %v, want ErrGameOver", err)
	}
}

func TestMakeGuessAfterFinished(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "p1", "alice")
	join(t, r, "p2", "bob")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if _, err := r.MakeGuess("p1", "1234"); err != nil {
		t.Fatalf("winning guess = %v", err)
	}
	if _, err := r.MakeGuess("p1", "5678"); !errors.Is(err, ErrAlreadyFinished) {
		t.Fatalf("guess after finishing = %v, want ErrAlreadyFinished", err)
	}
}

// TestWinningScenario follows two players to the end of a game: Bob wins on
// his first attempt, Alice finishes on her fifth, closing the room.
func TestWinningScenario(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "alice", "Alice")
	join(t, r, "bob", "Bob")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	res, err := r.MakeGuess("bob", "1234")
	if err != nil {
		t.Fatalf("bob's guess = %v", err)
	}
	if !res.IsWinner || res.Rank != 1 || res.RoomEnded {
		t.Fatalf("bob: IsWinner=%v Rank=%d RoomEnded=%v, want true/1/false", res.IsWinner, res.Rank, res.RoomEnded)
	}
	if res.SecretCode != "1234" {
		t.Fatalf("bob's result SecretCode = %q, want %q", res.SecretCode, "1234")
	}
	if got := r.Winner(); got == nil || got.ID != "bob" {
		t.Fatalf("Winner() = %+v, want bob", got)
	}
	if bob := r.Players[1]; bob.Score != 1000 {
		t.Fatalf("bob.Score = %d, want 1000", bob.Score)
	}

	for _, g := range []string{"5678", "4321", "1243", "1256"} {
		res, err = r.MakeGuess("alice", g)
		if err != nil {
			t.Fatalf("alice's guess %q = %v", g, err)
		}
		if res.IsWinner {
			t.Fatalf("alice's guess %q unexpectedly won", g)
		}
		if res.SecretCode != "" {
			t.Fatalf("losing guess leaked secret %q", res.SecretCode)
		}
	}

	res, err = r.MakeGuess("alice", "1234")
	if err != nil {
		t.Fatalf("alice's winning guess = %v", err)
	}
	if !res.IsWinner || res.Rank != 2 || !res.RoomEnded {
		t.Fatalf("alice: IsWinner=%v Rank=%d RoomEnded=%v, want true/2/true", res.IsWinner, res.Rank, res.RoomEnded)
	}
	if alice := r.Players[0]; alice.Score != 600 {
		t.Fatalf("alice.Score = %d, want 600 (5th attempt)", alice.Score)
	}
	if r.Phase != PhaseEnded {
		t.Fatalf("Phase = %q, want %q", r.Phase, PhaseEnded)
	}
	if got := r.Winner(); got == nil || got.ID != "bob" {
		t.Fatalf("Winner() after end = %+v, want bob (rank 1 is never reassigned)", got)
	}
}

// TestMonotonicRanks: finishing order dictates ranks 1..k with no gaps.
func TestMonotonicRanks(t *testing.T) {
	r := NewWithSecret("ROOM1", "9876")
	ids := []string{"p1", "p2", "p3"}
	for _, id := range ids {
		join(t, r, id, "player "+id)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	for i, id := range ids {
		res, err := r.MakeGuess(id, "9876")
		if err != nil {
			t.Fatalf("%s winning guess = %v", id, err)
		}
		if res.Rank != i+1 {
			t.Fatalf("%s Rank = %d, want %d", id, res.Rank, i+1)
		}
	}
	if r.Phase != PhaseEnded {
		t.Fatalf("Phase = %q, want %q after all finished", r.Phase, PhaseEnded)
	}
}

func TestScoreForAttempts(t *testing.T) {
	tests := []struct {
		attempt int
		want    int
	}{
		{1, 1000},
		{2, 900},
		{5, 600},
		{10, 100},
		{11, 100},
		{25, 100},
	}
	for _, tt := range tests {
		if got := scoreFor(tt.attempt); got != tt.want {
			t.Errorf("scoreFor(%d) = %d, want %d", tt.attempt, got, tt.want)
		}
	}
}

func TestRemovePlayer(t *testing.T) {
	r := New("ROOM1")
	join(t, r, "p1", "alice")
	join(t, r, "p2", "bob")

	if deletable := r.RemovePlayer("ghost"); deletable {
		t.Fatal("removing absent player reported room deletable")
	}
	if deletable := r.RemovePlayer("p1"); deletable {
		t.Fatal("room with one player left reported deletable")
	}
	if deletable := r.RemovePlayer("p2"); !deletable {
		t.Fatal("emptied room not reported deletable")
	}
	if r.Phase != PhaseOpen {
		t.Fatalf("RemovePlayer changed phase to %q", r.Phase)
	}
}

// A winner who leaves the room stays on the scoreboard: the winner summary
// is frozen at finish time rather than recomputed from the live roster.
func TestWinnerVisibleAfterLeaving(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "alice", "Alice")
	join(t, r, "bob", "Bob")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if _, err := r.MakeGuess("bob", "1234"); err != nil {
		t.Fatalf("bob's winning guess = %v", err)
	}

	if deletable := r.RemovePlayer("bob"); deletable {
		t.Fatal("room with alice still in it reported deletable")
	}
	st := r.State()
	if st.Winner == nil || st.Winner.ID != "bob" {
		t.Fatalf("st.Winner = %+v, want bob after leaving", st.Winner)
	}
	if st.Winner.Rank != 1 || st.Winner.Score != 1000 {
		t.Fatalf("st.Winner = %+v, want rank 1 score 1000", st.Winner)
	}
}

// TestCloneIsDeep: mutations on a clone must not reach the original room.
func TestCloneIsDeep(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "p1", "alice")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if _, err := r.MakeGuess("p1", "5678"); err != nil {
		t.Fatalf("guess = %v", err)
	}

	c := r.Clone()
	if err := c.AddPlayer("p2", "bob"); err == nil {
		t.Fatal("AddPlayer on started clone = nil, want error")
	}
	if _, err := c.MakeGuess("p1", "1234"); err != nil {
		t.Fatalf("clone guess = %v", err)
	}

	if r.Phase != PhaseStarted {
		t.Fatalf("original Phase = %q after mutating clone, want %q", r.Phase, PhaseStarted)
	}
	if got := len(r.Players[0].Attempts); got != 1 {
		t.Fatalf("original has %d attempts after mutating clone, want 1", got)
	}
	if r.WinnerID != "" || r.WinnerSummary != nil {
		t.Fatalf("original winner = %q/%+v after clone won, want unset", r.WinnerID, r.WinnerSummary)
	}
}

// TestStateConfidentiality: the snapshot must never expose the secret
// before the room has ended.
func TestStateConfidentiality(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "p1", "alice")

	st := r.State()
	if st.SecretCode != "" {
		t.Fatalf("open room snapshot leaked secret %q", st.SecretCode)
	}
	if !st.CanJoin || st.GameStarted || st.GameEnded || st.Winner != nil {
		t.Fatalf("fresh snapshot = %+v, want joinable/unstarted/no winner", st)
	}

	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	st = r.State()
	if st.SecretCode != "" {
		t.Fatalf("started room snapshot leaked secret %q", st.SecretCode)
	}
	if st.CanJoin || !st.GameStarted {
		t.Fatalf("started snapshot = %+v, want not joinable and started", st)
	}

	if _, err := r.MakeGuess("p1", "1234"); err != nil {
		t.Fatalf("winning guess = %v", err)
	}
	st = r.State()
	if st.SecretCode != "1234" {
		t.Fatalf("ended room snapshot SecretCode = %q, want %q", st.SecretCode, "1234")
	}
	if !st.GameEnded || st.Winner == nil || st.Winner.ID != "p1" {
		t.Fatalf("ended snapshot = %+v, want ended with p1 as winner", st)
	}
}

// TestStateSummaries checks the per-player projection, including the
// last-attempt echo used by polling clients.
func TestStateSummaries(t *testing.T) {
	r := NewWithSecret("ROOM1", "1234")
	join(t, r, "p1", "alice")
	join(t, r, "p2", "bob")
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if _, err := r.MakeGuess("p1", "1243"); err != nil {
		t.Fatalf("guess = %v", err)
	}

	st := r.State()
	if len(st.Players) != 2 {
		t.Fatalf("len(st.Players) = %d, want 2", len(st.Players))
	}
	alice := st.Players[0]
	if alice.Attempts != 1 || alice.LastAttempt == nil {
		t.Fatalf("alice summary = %+v, want one recorded attempt", alice)
	}
	if alice.LastAttempt.Bulls != 2 || alice.LastAttempt.Cows != 2 {
		t.Fatalf("alice last attempt = %+v, want 2 bulls 2 cows", alice.LastAttempt)
	}
	if bob := st.Players[1]; bob.Attempts != 0 || bob.LastAttempt != nil {
		t.Fatalf("bob summary = %+v, want no attempts", bob)
	}
}
