package boardui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkpad/internal/canvas"
	"github.com/example/inkpad/internal/theme"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
)

const (
	titleHeight  = 24
	bottomHeight = 24
	rowHeight    = 16
)

var toolbarWidth = 96

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// chrome holds the active window theme. It is set once before the window
// opens and read from both the event loop and the paint goroutine.
var chrome = theme.Default()

// Brush option rows shown in the toolbar. Values stay within the clamping
// range enforced by the brush package.
var (
	sizeOptions     = []float64{5, 10, 20, 35, 50, 80}
	densityOptions  = []int{10, 30, 60, 80, 100}
	contrastOptions = []int{0, 25, 50, 75, 100}
)

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// nearestSizeIndex returns the option row closest to the given brush size.
func nearestSizeIndex(size float64) int {
	best := 0
	for i, s := range sizeOptions {
		if abs(s-size) < abs(sizeOptions[best]-size) {
			best = i
		}
	}
	return best
}

func nearestIntIndex(v int, options []int) int {
	best := 0
	for i, o := range options {
		if absInt(o-v) < absInt(options[best]-v) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// keyboardAction maps a keyboard shortcut to the action name.
var keyboardAction = map[KeyShortcut]string{}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// Shortcut draws a clickable label in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

var _ Button = (*Shortcut)(nil)

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	col := chrome.ButtonBackground
	txt := chrome.ButtonText
	switch state {
	case StateHover:
		col = chrome.ButtonBackgroundHover
		txt = chrome.ButtonTextHover
	case StatePressed:
		col = chrome.ButtonBackgroundPress
		txt = chrome.ButtonTextPress
	}
	draw.Draw(dst, s.rect, &image.Uniform{col}, image.Point{}, draw.Src)
	drawRectOutline(dst, s.rect, chrome.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(txt), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

var shortcutRects []Shortcut
var hoverShortcut = -1

var hoverSize = -1
var hoverDensity = -1
var hoverContrast = -1

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

func fitZoom(winW, winH int) float64 {
	availW := winW - toolbarWidth
	availH := winH - bottomHeight
	zx := float64(availW) / float64(canvas.Width)
	zy := float64(availH) / float64(canvas.Height)
	if zx < zy {
		return zx
	}
	return zy
}

// sheetRect returns the destination rectangle for the displayed sheet. The
// sheet is anchored at the toolbar's right edge so its position stays stable
// across repaints.
func sheetRect(zoom float64) image.Rectangle {
	w := int(canvas.Width * zoom)
	h := int(canvas.Height * zoom)
	return image.Rect(toolbarWidth, 0, toolbarWidth+w, h)
}

func drawRectOutline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}

func drawFilledCircle(dst *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(dst.Bounds()) {
					dst.Set(px, py, col)
				}
			}
		}
	}
}

// Toolbar row indices, derived from the fixed layout produced by drawToolbar.
// Rows are rowHeight tall and start right below the title area.
type toolbarHit struct {
	section string // "size", "density", "contrast" or ""
	index   int
}

func hitToolbarRow(y int) toolbarHit {
	row := (y - titleHeight) / rowHeight
	if row < 0 {
		return toolbarHit{}
	}
	// Header rows take one slot each.
	row--
	if row < 0 {
		return toolbarHit{}
	}
	if row < len(sizeOptions) {
		return toolbarHit{section: "size", index: row}
	}
	row -= len(sizeOptions) + 1
	if row < 0 {
		return toolbarHit{}
	}
	if row < len(densityOptions) {
		return toolbarHit{section: "density", index: row}
	}
	row -= len(densityOptions) + 1
	if row < 0 {
		return toolbarHit{}
	}
	if row < len(contrastOptions) {
		return toolbarHit{section: "contrast", index: row}
	}
	return toolbarHit{}
}

func drawToolbar(dst *image.RGBA, height, sizeIdx, densityIdx, contrastIdx int) {
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, height),
		&image.Uniform{chrome.ToolbarBackground}, image.Point{}, draw.Src)

	title := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString("Inkpad")

	y := titleHeight
	header := func(label string) {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.Foreground), Face: basicfont.Face7x13,
			Dot: fixed.P(4, y+12)}
		d.DrawString(label)
		y += rowHeight
	}
	row := func(label string, selected, hovered bool, preview func(rect image.Rectangle)) {
		rect := image.Rect(0, y, toolbarWidth, y+rowHeight)
		c := chrome.ButtonBackground
		txt := chrome.ButtonText
		if selected {
			c = chrome.ButtonBackgroundPress
			txt = chrome.ButtonTextPress
		} else if hovered {
			c = chrome.ButtonBackgroundHover
			txt = chrome.ButtonTextHover
		}
		draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(txt), Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(label)
		if preview != nil {
			preview(rect)
		}
		y += rowHeight
	}

	header("Size")
	for i, s := range sizeOptions {
		sz := s
		row(fmt.Sprintf("%g", s), i == sizeIdx, i == hoverSize, func(rect image.Rectangle) {
			r := int(sz / 12)
			if r < 1 {
				r = 1
			}
			drawFilledCircle(dst, toolbarWidth-12, (rect.Min.Y+rect.Max.Y)/2, r, chrome.Foreground)
		})
	}

	header("Density")
	for i, d := range densityOptions {
		row(fmt.Sprintf("%d%%", d), i == densityIdx, i == hoverDensity, nil)
	}

	header("Contrast")
	for i, c := range contrastOptions {
		row(fmt.Sprintf("%d%%", c), i == contrastIdx, i == hoverContrast, nil)
	}
}

func drawBar(dst *image.RGBA, width, height int, border, drawing bool, trigger func(string)) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{chrome.BarBackground}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]

	borderLabel := "^B:border off"
	if border {
		borderLabel = "^B:border on"
	}
	shortcuts := []Shortcut{
		{label: "^S:save", action: func() { trigger("save") }},
		{label: "^C:copy", action: func() { trigger("copy") }},
		{label: "^X:clear", action: func() { trigger("clear") }},
		{label: borderLabel, action: func() { trigger("border") }},
		{label: "^P:pdf", action: func() { trigger("pdf") }},
		{label: "Q:quit", action: func() { trigger("quit") }},
	}
	x := toolbarWidth + 4
	yText := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, yText-14, x+w+2, yText+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}

	if drawing {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(chrome.BarText), Face: basicfont.Face7x13}
		label := "drawing..."
		w := d.MeasureString(label).Ceil()
		d.Dot = fixed.P(width-w-6, yText)
		d.DrawString(label)
	}
}

type paintState struct {
	width, height  int
	sheet          *image.RGBA
	zoom           float64
	sizeIdx        int
	densityIdx     int
	contrastIdx    int
	border         bool
	drawing        bool
	message        string
	messageUntil   time.Time
	handleShortcut func(string)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	draw.Draw(b.RGBA(), b.RGBA().Bounds(), &image.Uniform{chrome.Background}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	dst := sheetRect(st.zoom)
	xdraw.NearestNeighbor.Scale(b.RGBA(), dst, st.sheet, st.sheet.Bounds(), draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	drawToolbar(b.RGBA(), st.height, st.sizeIdx, st.densityIdx, st.contrastIdx)
	drawBar(b.RGBA(), st.width, st.height, st.border, st.drawing, st.handleShortcut)

	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: b.RGBA(), Src: image.NewUniform(chrome.Foreground), Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(b.RGBA(), rect, &image.Uniform{chrome.BarBackground}, image.Point{}, draw.Over)
		drawRectOutline(b.RGBA(), rect, chrome.ButtonBorder)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
