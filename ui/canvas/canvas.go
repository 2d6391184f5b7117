// Package canvas provides the score display widget with pan, zoom, and click handling.
package canvas

import (
	"image"
	"image/color"

	"scorewriter/internal/app"
	"scorewriter/internal/layout"
	"scorewriter/internal/raster"
	"scorewriter/internal/render"
	"scorewriter/internal/score"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 1.25
)

// ScoreCanvas displays the engraved score and translates clicks into
// page coordinates for the editing session.
type ScoreCanvas struct {
	widget.BaseWidget

	state *app.State

	// Display state
	raster *fynecanvas.Raster
	zoom   float64
	beams  bool

	// Cached engraving output, rebuilt when the score changes
	page  *image.RGBA
	dirty bool

	// Container
	scroll  *zoomScroll
	content *clickableContent
	imgSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onLeftClick  func(x, y float64) // Page coordinates
	onRightClick func(x, y float64) // Page coordinates
}

// zoomScroll wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ScoreCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ScoreCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// clickableContent wraps the raster to handle mouse events.
type clickableContent struct {
	widget.BaseWidget
	canvas *ScoreCanvas
	raster *fynecanvas.Raster
}

func newClickableContent(sc *ScoreCanvas, raster *fynecanvas.Raster) *clickableContent {
	cc := &clickableContent{canvas: sc, raster: raster}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *clickableContent) CreateRenderer() fyne.WidgetRenderer {
	return &clickableContentRenderer{content: cc}
}

func (cc *clickableContent) MinSize() fyne.Size {
	return cc.raster.MinSize()
}

func (cc *clickableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		cc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		cc.canvas.ZoomOut()
	}
}

// pagePoint converts a widget click position to page coordinates,
// or reports false when the click lands outside the widget.
func (cc *clickableContent) pagePoint(ev *fyne.PointEvent) (float64, float64, bool) {
	// Reject clicks outside widget bounds; fyne occasionally delivers them
	size := cc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return 0, 0, false
	}
	x := float64(ev.Position.X) / cc.canvas.zoom
	y := float64(ev.Position.Y) / cc.canvas.zoom
	return x, y, true
}

// Tapped handles left-click events.
func (cc *clickableContent) Tapped(ev *fyne.PointEvent) {
	if cc.canvas.onLeftClick == nil {
		return
	}
	if x, y, ok := cc.pagePoint(ev); ok {
		cc.canvas.onLeftClick(x, y)
	}
}

// TappedSecondary handles right-click events.
func (cc *clickableContent) TappedSecondary(ev *fyne.PointEvent) {
	if cc.canvas.onRightClick == nil {
		return
	}
	if x, y, ok := cc.pagePoint(ev); ok {
		cc.canvas.onRightClick(x, y)
	}
}

type clickableContentRenderer struct {
	content *clickableContent
}

func (r *clickableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *clickableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *clickableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *clickableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *clickableContentRenderer) Destroy() {}

// NewScoreCanvas creates a canvas bound to the application state.
// It goes through the state rather than the session directly because
// opening a project replaces the session.
func NewScoreCanvas(state *app.State) *ScoreCanvas {
	sc := &ScoreCanvas{
		state:   state,
		zoom:    1.0,
		dirty:   true,
		imgSize: fyne.NewSize(score.DefaultWidth, score.DefaultHeight),
	}

	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.raster.SetMinSize(sc.imgSize)

	sc.content = newClickableContent(sc, sc.raster)
	sc.scroll = newZoomScroll(sc.content, sc)

	state.On(app.EventScoreChanged, func(interface{}) { sc.Invalidate() })
	state.On(app.EventSelectionChanged, func(interface{}) { sc.Invalidate() })

	sc.ExtendBaseWidget(sc)
	return sc
}

// Container returns the canvas container for embedding in layouts.
func (sc *ScoreCanvas) Container() fyne.CanvasObject {
	return sc.scroll
}

// Invalidate discards the cached page and redraws.
func (sc *ScoreCanvas) Invalidate() {
	sc.dirty = true
	sc.updateContentSize()
}

// SetShowBeams toggles beamed rendering of eighth and sixteenth runs.
func (sc *ScoreCanvas) SetShowBeams(on bool) {
	sc.beams = on
	sc.Invalidate()
}

// ShowBeams reports whether beamed rendering is active.
func (sc *ScoreCanvas) ShowBeams() bool {
	return sc.beams
}

// SetZoom sets the zoom level.
func (sc *ScoreCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	sc.zoom = zoom
	sc.updateContentSize()

	if sc.onZoomChange != nil {
		sc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (sc *ScoreCanvas) Zoom() float64 {
	return sc.zoom
}

// ZoomIn increases the zoom level.
func (sc *ScoreCanvas) ZoomIn() {
	sc.SetZoom(sc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (sc *ScoreCanvas) ZoomOut() {
	sc.SetZoom(sc.zoom / zoomStep)
}

// OnZoomChange sets a callback for zoom changes.
func (sc *ScoreCanvas) OnZoomChange(callback func(zoom float64)) {
	sc.onZoomChange = callback
}

// OnLeftClick sets a callback for left-click events.
// Coordinates are in page space (not zoomed).
func (sc *ScoreCanvas) OnLeftClick(callback func(x, y float64)) {
	sc.onLeftClick = callback
}

// OnRightClick sets a callback for right-click events.
// Coordinates are in page space (not zoomed).
func (sc *ScoreCanvas) OnRightClick(callback func(x, y float64)) {
	sc.onRightClick = callback
}

// Refresh refreshes the canvas display.
func (sc *ScoreCanvas) Refresh() {
	sc.raster.Refresh()
}

// renderPage engraves the current score into the cached page image.
func (sc *ScoreCanvas) renderPage() {
	s := sc.state.Session.Score()
	l := layout.Compute(s)
	prims := render.RenderLayout(l, s, sc.state.Session.Selection(), render.Options{Beams: sc.beams})
	sc.page = raster.Draw(prims, int(s.Width), int(s.Height))
	sc.dirty = false
}

// updateContentSize updates the content size based on page size and zoom.
func (sc *ScoreCanvas) updateContentSize() {
	if sc.dirty {
		sc.renderPage()
	}
	bounds := sc.page.Bounds()
	width := float32(float64(bounds.Dx()) * sc.zoom)
	height := float32(float64(bounds.Dy()) * sc.zoom)
	sc.imgSize = fyne.NewSize(width, height)

	sc.raster.SetMinSize(sc.imgSize)
	sc.raster.Resize(sc.imgSize)
	if sc.content != nil {
		sc.content.Resize(sc.imgSize)
		sc.content.Refresh()
	}
	sc.raster.Refresh()
	if sc.scroll != nil {
		sc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (sc *ScoreCanvas) draw(w, h int) image.Image {
	if sc.dirty {
		sc.renderPage()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	src := sc.page
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcX := int(float64(x) / sc.zoom)
			srcY := int(float64(y) / sc.zoom)
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X ||
				srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
				output.Set(x, y, color.RGBA{64, 60, 55, 255})
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
	return output
}

// CreateRenderer implements fyne.Widget.
func (sc *ScoreCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &scoreCanvasRenderer{canvas: sc}
}

type scoreCanvasRenderer struct {
	canvas *ScoreCanvas
}

func (r *scoreCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *scoreCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *scoreCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *scoreCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *scoreCanvasRenderer) Destroy() {}
