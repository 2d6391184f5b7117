package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"scorewriter/internal/score"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := NewState()
	st.Session.UpdateMeta("Etude", "C. Czerny")
	st.Session.SetKeySignature("D")
	staffID := st.Session.Score().Staves[0].ID
	if err := st.Session.AddNote(staffID, 0, score.NewPitch(score.F, 5)); err != nil {
		t.Fatalf("add note: %v", err)
	}

	path := filepath.Join(t.TempDir(), "etude.score")
	if err := st.SaveProject(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if st.Modified {
		t.Fatal("save left the modified flag set")
	}
	if st.ProjectPath != path {
		t.Fatalf("project path = %q, want %q", st.ProjectPath, path)
	}

	other := NewState()
	if err := other.LoadProject(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	sc := other.Session.Score()
	if sc.Title != "Etude" || sc.Composer != "C. Czerny" || sc.Key != "D" {
		t.Fatalf("round trip lost metadata: %+v", sc)
	}
	n := sc.Staves[0].Measures[0].Notes[0]
	if n.Pitch != score.NewPitch(score.F, 5) {
		t.Fatalf("round trip lost the note: %s", n.Pitch)
	}
	if other.Session.CanUndo() {
		t.Fatal("loaded session carried undo history")
	}
}

func TestLoadProjectRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	noScore := filepath.Join(dir, "empty.score")
	if err := os.WriteFile(noScore, []byte(`{"version":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.score")
	if err := os.WriteFile(garbage, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	noStaves := filepath.Join(dir, "nostaves.score")
	if err := os.WriteFile(noStaves, []byte(`{"version":1,"score":{"title":"x","staves":[]}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	st := NewState()
	for _, path := range []string{noScore, garbage, noStaves, filepath.Join(dir, "missing.score")} {
		if err := st.LoadProject(path); err == nil {
			t.Fatalf("load %s succeeded", filepath.Base(path))
		}
	}
	if st.Session.Score().Title != "Untitled" {
		t.Fatal("failed load replaced the session")
	}
}

func TestReadScoreAcceptsBareScore(t *testing.T) {
	sc := score.NewScore("Bare")
	path := filepath.Join(t.TempDir(), "bare.json")
	if err := WriteScore(path, sc); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadScore(path)
	if err != nil {
		t.Fatalf("read project form: %v", err)
	}
	if got.Title != "Bare" {
		t.Fatalf("title = %q", got.Title)
	}

	// A bare score without the project wrapper loads too.
	bare := filepath.Join(t.TempDir(), "naked.json")
	if err := os.WriteFile(bare, mustMarshalScore(t, sc), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = ReadScore(bare)
	if err != nil {
		t.Fatalf("read bare form: %v", err)
	}
	if got.Title != "Bare" || len(got.Staves) != 1 {
		t.Fatalf("bare read mangled the score: %+v", got)
	}
}

func TestModifiedRelay(t *testing.T) {
	st := NewState()
	var events []bool
	st.On(EventModified, func(data interface{}) {
		events = append(events, data.(bool))
	})

	staffID := st.Session.Score().Staves[0].ID
	if err := st.Session.AddNote(staffID, 0, score.NewPitch(score.C, 5)); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if !st.Modified {
		t.Fatal("edit did not set the modified flag")
	}
	if len(events) != 1 || !events[0] {
		t.Fatalf("modified events = %v", events)
	}

	path := filepath.Join(t.TempDir(), "m.score")
	if err := st.SaveProject(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if st.Modified {
		t.Fatal("save did not clear the modified flag")
	}
}

func TestResetStartsFresh(t *testing.T) {
	st := NewState()
	staffID := st.Session.Score().Staves[0].ID
	st.Session.UpdateMeta("Old", "")
	if err := st.SaveProject(filepath.Join(t.TempDir(), "old.score")); err != nil {
		t.Fatalf("save: %v", err)
	}

	scoreEvents := 0
	st.On(EventScoreChanged, func(interface{}) { scoreEvents++ })

	st.Reset()
	if st.ProjectPath != "" || st.Modified {
		t.Fatalf("reset kept project state: path=%q modified=%v", st.ProjectPath, st.Modified)
	}
	if st.Session.Score().Title != "Untitled" {
		t.Fatalf("reset score title = %q", st.Session.Score().Title)
	}
	if scoreEvents == 0 {
		t.Fatal("reset emitted no score change")
	}

	// The fresh session is wired into the relay.
	newStaffID := st.Session.Score().Staves[0].ID
	if newStaffID == staffID {
		t.Fatal("reset reused the old staff")
	}
	if err := st.Session.AddNote(newStaffID, 0, score.NewPitch(score.G, 4)); err != nil {
		t.Fatalf("add note after reset: %v", err)
	}
	if !st.Modified {
		t.Fatal("edit after reset did not reach the state")
	}
}

func mustMarshalScore(t *testing.T, sc *score.Score) []byte {
	t.Helper()
	data, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}
