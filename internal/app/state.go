// Package app provides application lifecycle management, project file I/O,
// and events around an editing session.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"scorewriter/internal/edit"
	"scorewriter/internal/score"
)

// ProjectFileVersion is written into saved projects.
const ProjectFileVersion = 1

// State holds the application state: the editing session, the project path,
// and the modified flag. The engine packages stay I/O-free; all persistence
// lives here.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	Modified    bool

	Session *edit.Session

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventScoreChanged
	EventSelectionChanged
	EventToolChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a state around a fresh untitled score.
func NewState() *State {
	s := &State{
		Session:   edit.NewSession(score.NewScore("Untitled")),
		listeners: make(map[EventType][]EventListener),
	}
	s.relaySessionEvents()
	return s
}

// relaySessionEvents forwards session events to application listeners and
// keeps the modified flag current.
func (s *State) relaySessionEvents() {
	s.Session.On(edit.EventScoreChanged, func() {
		s.SetModified(true)
		s.Emit(EventScoreChanged, nil)
	})
	s.Session.On(edit.EventSelectionChanged, func() {
		s.Emit(EventSelectionChanged, nil)
	})
	s.Session.On(edit.EventToolChanged, func() {
		s.Emit(EventToolChanged, nil)
	})
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Reset discards the current project and starts a fresh untitled score.
func (s *State) Reset() {
	s.mu.Lock()
	s.ProjectPath = ""
	s.Modified = false
	s.Session = edit.NewSession(score.NewScore("Untitled"))
	s.mu.Unlock()
	s.relaySessionEvents()
	s.Emit(EventScoreChanged, nil)
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// ProjectFile is the JSON structure of a saved .score file.
type ProjectFile struct {
	Version int          `json:"version"`
	Score   *score.Score `json:"score"`
}

// LoadProject reads a score project from disk and replaces the session.
// The old session's undo history is discarded with it.
func (s *State) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err != nil {
		return fmt.Errorf("parse project %s: %w", path, err)
	}
	if proj.Score == nil {
		return fmt.Errorf("project %s has no score", path)
	}
	if len(proj.Score.Staves) == 0 {
		return fmt.Errorf("project %s has no staves", path)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.Session = edit.NewSession(proj.Score)
	s.mu.Unlock()
	s.relaySessionEvents()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject writes the current score to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := ProjectFile{
		Version: ProjectFileVersion,
		Score:   s.Session.Score(),
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// ReadScore loads a bare score (or a project file) from disk without
// touching any session. The CLI tools use it.
func ReadScore(path string) (*score.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err == nil && proj.Score != nil {
		return proj.Score, nil
	}

	var sc score.Score
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse score %s: %w", path, err)
	}
	return &sc, nil
}

// WriteScore saves a bare score as a project file.
func WriteScore(path string, sc *score.Score) error {
	data, err := json.MarshalIndent(ProjectFile{Version: ProjectFileVersion, Score: sc}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
