// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"scorewriter/internal/app"
	"scorewriter/internal/layout"
	"scorewriter/internal/raster"
	"scorewriter/internal/render"
	"scorewriter/internal/score"
	"scorewriter/internal/version"
	"scorewriter/ui/canvas"
	"scorewriter/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir     = "lastDirectory"
	prefKeyLastProject = "lastProject"
	prefKeyShowBeams   = "showBeams"
	prefKeyZoom        = "zoomLevel"
)

var durationLabels = []string{"Whole", "Half", "Quarter", "Eighth", "Sixteenth"}

var durationByLabel = map[string]score.Duration{
	"Whole":     score.Whole,
	"Half":      score.Half,
	"Quarter":   score.Quarter,
	"Eighth":    score.Eighth,
	"Sixteenth": score.Sixteenth,
}

var timeChoices = []string{"4/4", "3/4", "2/4", "6/8", "2/2", "9/8", "12/8"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ScoreCanvas
	statusBar *widget.Label

	durationRadio *widget.RadioGroup
	dottedCheck   *widget.Check
	titleEntry    *widget.Entry
	composerEntry *widget.Entry
	keySelect     *widget.Select
	timeSelect    *widget.Select
	tempoEntry    *widget.Entry
	clefSelect    *widget.Select

	// Menu items that need state tracking
	beamsItem *fyne.MenuItem

	// Guards form widgets while they are being refreshed from the score
	syncing bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Scorewriter")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  prefs.Load(),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.syncForm()

	if mw.prefs.Bool(prefKeyShowBeams, false) {
		mw.onToggleBeams()
	}

	// Zoom persists across runs; saving happens on every change.
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom %.0f%%", zoom*100))
		mw.prefs.SetFloat(prefKeyZoom, zoom)
		if err := mw.prefs.Save(); err != nil {
			log.Printf("save preferences: %v", err)
		}
	})
	if zoom := mw.prefs.Float(prefKeyZoom, 1.0); zoom != 1.0 {
		mw.canvas.SetZoom(zoom)
	}

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewScoreCanvas(mw.state)
	mw.canvas.OnLeftClick(mw.onCanvasClick)
	mw.canvas.OnRightClick(mw.onCanvasRightClick)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()
	sidePanel := mw.createSidePanel()

	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(sidePanel, canvasArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1280, 800))
}

// createToolbar creates the note entry toolbar.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.durationRadio = widget.NewRadioGroup(durationLabels, func(label string) {
		if mw.syncing || label == "" {
			return
		}
		tool := mw.state.Session.Tool()
		tool.Duration = durationByLabel[label]
		mw.state.Session.SetTool(tool)
	})
	mw.durationRadio.Horizontal = true
	mw.durationRadio.SetSelected("Quarter")

	mw.dottedCheck = widget.NewCheck("Dotted", func(on bool) {
		if mw.syncing {
			return
		}
		tool := mw.state.Session.Tool()
		tool.Dotted = on
		mw.state.Session.SetTool(tool)
	})

	restBtn := widget.NewButton("Rest", mw.onInsertRest)
	deleteBtn := widget.NewButton("Delete", mw.onDeleteNote)

	return container.NewHBox(
		widget.NewLabel("Note:"),
		mw.durationRadio,
		mw.dottedCheck,
		widget.NewSeparator(),
		restBtn,
		deleteBtn,
	)
}

// createSidePanel creates the score settings panel.
func (mw *MainWindow) createSidePanel() fyne.CanvasObject {
	mw.titleEntry = widget.NewEntry()
	mw.titleEntry.OnChanged = func(s string) {
		if mw.syncing {
			return
		}
		mw.applyErr(mw.state.Session.UpdateMeta(s, mw.composerEntry.Text))
	}

	mw.composerEntry = widget.NewEntry()
	mw.composerEntry.OnChanged = func(s string) {
		if mw.syncing {
			return
		}
		mw.applyErr(mw.state.Session.UpdateMeta(mw.titleEntry.Text, s))
	}

	keys := score.KnownKeys()
	keyNames := make([]string, len(keys))
	for i, k := range keys {
		keyNames[i] = string(k)
	}
	mw.keySelect = widget.NewSelect(keyNames, func(name string) {
		if mw.syncing {
			return
		}
		mw.applyErr(mw.state.Session.SetKeySignature(score.KeySignature(name)))
	})

	mw.timeSelect = widget.NewSelect(timeChoices, func(choice string) {
		if mw.syncing {
			return
		}
		var beats, beatType int
		if _, err := fmt.Sscanf(choice, "%d/%d", &beats, &beatType); err != nil {
			return
		}
		mw.applyErr(mw.state.Session.SetTimeSignature(beats, beatType))
	})

	mw.tempoEntry = widget.NewEntry()
	mw.tempoEntry.OnChanged = func(s string) {
		if mw.syncing {
			return
		}
		if bpm, err := strconv.Atoi(s); err == nil && bpm > 0 {
			mw.applyErr(mw.state.Session.SetTempo(bpm))
		}
	}

	mw.clefSelect = widget.NewSelect(
		[]string{string(score.Treble), string(score.Bass), string(score.Alto), string(score.Tenor)},
		func(name string) {
			if mw.syncing {
				return
			}
			sel := mw.state.Session.Selection()
			if !sel.HasStaff() {
				mw.updateStatus("Select a staff first")
				return
			}
			mw.applyErr(mw.state.Session.UpdateStaffClef(sel.StaffID, score.Clef(name)))
		})

	form := widget.NewForm(
		widget.NewFormItem("Title", mw.titleEntry),
		widget.NewFormItem("Composer", mw.composerEntry),
		widget.NewFormItem("Key", mw.keySelect),
		widget.NewFormItem("Time", mw.timeSelect),
		widget.NewFormItem("Tempo", mw.tempoEntry),
		widget.NewFormItem("Clef", mw.clefSelect),
	)

	addMeasureBtn := widget.NewButton("Add Measure", func() {
		mw.applyErr(mw.state.Session.AddMeasure(""))
	})
	removeMeasureBtn := widget.NewButton("Remove Measure", func() {
		mw.applyErr(mw.state.Session.RemoveMeasure(""))
	})
	addStaffBtn := widget.NewButton("Add Staff", mw.onAddStaff)
	removeStaffBtn := widget.NewButton("Remove Staff", mw.onRemoveStaff)

	return container.NewVBox(
		widget.NewLabelWithStyle("Score", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		widget.NewSeparator(),
		addMeasureBtn,
		removeMeasureBtn,
		addStaffBtn,
		removeStaffBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Score", mw.onNewScore),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export SVG...", mw.onExportSVG),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Note", mw.onDeleteNote),
		fyne.NewMenuItem("Clear Selection", func() { mw.state.Session.ClearSelection() }),
	)

	mw.beamsItem = fyne.NewMenuItem("  Beam Eighth Notes", mw.onToggleBeams)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
		fyne.NewMenuItemSeparator(),
		mw.beamsItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Scorewriter - " + filepath.Base(path))
			mw.updateStatus("Opened " + path)
		}
		mw.canvas.Invalidate()
		mw.syncForm()
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Scorewriter - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventScoreChanged, func(data interface{}) {
		mw.syncForm()
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		mw.describeSelection()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// syncForm pushes score state into the side panel widgets.
func (mw *MainWindow) syncForm() {
	mw.syncing = true
	defer func() { mw.syncing = false }()

	s := mw.state.Session.Score()
	mw.titleEntry.SetText(s.Title)
	mw.composerEntry.SetText(s.Composer)
	mw.keySelect.SetSelected(string(s.Key))
	mw.timeSelect.SetSelected(fmt.Sprintf("%d/%d", s.Time.Beats, s.Time.BeatType))
	mw.tempoEntry.SetText(strconv.Itoa(s.Tempo))

	sel := mw.state.Session.Selection()
	if staff := s.StaffByID(sel.StaffID); staff != nil {
		mw.clefSelect.SetSelected(string(staff.Clef))
	}
}

// describeSelection reports the current selection on the status bar.
func (mw *MainWindow) describeSelection() {
	sel := mw.state.Session.Selection()
	if !sel.HasMeasure() {
		mw.updateStatus("Ready")
		return
	}
	s := mw.state.Session.Score()
	staff := s.StaffByID(sel.StaffID)
	if staff == nil {
		return
	}
	if !sel.HasNote() || sel.NoteIdx >= len(staff.Measures[sel.MeasureIdx].Notes) {
		mw.updateStatus(fmt.Sprintf("%s, measure %d", staff.Name, sel.MeasureIdx+1))
		return
	}
	n := staff.Measures[sel.MeasureIdx].Notes[sel.NoteIdx]
	if n.Kind == score.KindRest {
		mw.updateStatus(fmt.Sprintf("%s, measure %d: %s rest", staff.Name, sel.MeasureIdx+1, n.Duration))
		return
	}
	mw.updateStatus(fmt.Sprintf("%s, measure %d: %s %s%d",
		staff.Name, sel.MeasureIdx+1, n.Duration, n.Pitch.Name, n.Pitch.Octave))
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// applyErr shows command errors on the status bar.
func (mw *MainWindow) applyErr(err error) {
	if err != nil {
		mw.updateStatus(err.Error())
	}
}

// Canvas click handlers

// slotNear finds an existing note slot close to the click, so clicks on
// a drawn note select it instead of stacking a new one.
func slotNear(l *layout.Layout, hit layout.Hit, x, y float64) (layout.NoteSlot, bool) {
	g := l.Staves[hit.StaffIdx]
	if hit.MeasureIdx >= len(g.Measures) {
		return layout.NoteSlot{}, false
	}
	for _, slot := range g.Measures[hit.MeasureIdx].Notes {
		if math.Abs(x-slot.X) <= slot.SlotWidth/2 &&
			math.Abs(y-slot.Y) <= layout.LineSpacing {
			return slot, true
		}
	}
	return layout.NoteSlot{}, false
}

func (mw *MainWindow) onCanvasClick(x, y float64) {
	s := mw.state.Session.Score()
	l := layout.Compute(s)
	hit, ok := l.HitTest(x, y)
	if !ok {
		mw.state.Session.ClearSelection()
		return
	}

	if slot, ok := slotNear(l, hit, x, y); ok {
		mw.state.Session.SelectNote(hit.StaffID, hit.MeasureIdx, slot.NoteIdx)
		return
	}

	if err := mw.state.Session.AddNote(hit.StaffID, hit.MeasureIdx, hit.Pitch); err != nil {
		mw.applyErr(err)
		return
	}
	mw.describeSelection()
}

func (mw *MainWindow) onCanvasRightClick(x, y float64) {
	s := mw.state.Session.Score()
	l := layout.Compute(s)
	hit, ok := l.HitTest(x, y)
	if !ok {
		return
	}
	slot, ok := slotNear(l, hit, x, y)
	if !ok {
		return
	}
	mw.applyErr(mw.state.Session.RemoveNote(hit.StaffID, hit.MeasureIdx, slot.NoteIdx))
}

// Menu action handlers

func (mw *MainWindow) onNewScore() {
	mw.state.Reset()
	mw.SetTitle("Scorewriter")
	mw.canvas.Invalidate()
	mw.syncForm()
	mw.updateStatus("New score")
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setPref(prefKeyLastProject, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".score", ".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSave() {
	if mw.state.ProjectPath == "" {
		mw.onSaveAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".score" {
			path += ".score"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setPref(prefKeyLastProject, path)
	}, mw.Window)
	fd.SetFileName("untitled.score")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportSVG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".svg" {
			path += ".svg"
		}
		mw.saveLastDir(path)
		if err := mw.writeSVG(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("score.svg")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) writeSVG(path string) error {
	s := mw.state.Session.Score()
	prims := render.Render(s, score.NoSelection())
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.WriteSVG(f, s.Width, s.Height, prims)
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := mw.writePNG(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("score.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) writePNG(path string) error {
	s := mw.state.Session.Score()
	prims := render.Render(s, score.NoSelection())
	img := raster.Draw(prims, int(s.Width), int(s.Height))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func (mw *MainWindow) onUndo() {
	if !mw.state.Session.Undo() {
		mw.updateStatus("Nothing to undo")
		return
	}
	mw.updateStatus("Undid last edit")
}

func (mw *MainWindow) onRedo() {
	if !mw.state.Session.Redo() {
		mw.updateStatus("Nothing to redo")
		return
	}
	mw.updateStatus("Redid last edit")
}

func (mw *MainWindow) onInsertRest() {
	sel := mw.state.Session.Selection()
	if !sel.HasMeasure() {
		mw.updateStatus("Click a measure first")
		return
	}
	mw.applyErr(mw.state.Session.AddRest(sel.StaffID, sel.MeasureIdx))
}

func (mw *MainWindow) onDeleteNote() {
	sel := mw.state.Session.Selection()
	if !sel.HasNote() {
		mw.updateStatus("No note selected")
		return
	}
	mw.applyErr(mw.state.Session.RemoveNote(sel.StaffID, sel.MeasureIdx, sel.NoteIdx))
}

func (mw *MainWindow) onAddStaff() {
	n := len(mw.state.Session.Score().Staves) + 1
	mw.applyErr(mw.state.Session.AddStaff(fmt.Sprintf("Staff %d", n), score.Treble))
}

func (mw *MainWindow) onRemoveStaff() {
	sel := mw.state.Session.Selection()
	staffID := sel.StaffID
	if staffID == "" {
		staves := mw.state.Session.Score().Staves
		staffID = staves[len(staves)-1].ID
	}
	mw.applyErr(mw.state.Session.RemoveStaff(staffID))
}

func (mw *MainWindow) onToggleBeams() {
	enabled := !mw.canvas.ShowBeams()
	mw.canvas.SetShowBeams(enabled)
	if enabled {
		mw.beamsItem.Label = "✓ Beam Eighth Notes"
	} else {
		mw.beamsItem.Label = "  Beam Eighth Notes"
	}
	mw.prefs.SetBool(prefKeyShowBeams, enabled)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Scorewriter",
		fmt.Sprintf("Scorewriter v%s\n\n"+
			"A cross-platform music notation editor.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// setPref stores a preference and persists the file.
func (mw *MainWindow) setPref(key, val string) {
	mw.prefs.SetString(key, val)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.setPref(prefKeyLastDir, dir)
}

// RestoreLastProject reopens the most recently used project, if any.
func (mw *MainWindow) RestoreLastProject() {
	path := mw.prefs.String(prefKeyLastProject)
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := mw.state.LoadProject(path); err != nil {
		mw.updateStatus("Could not reopen " + path)
		return
	}
	mw.state.SetModified(false)
}
