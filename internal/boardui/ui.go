package boardui

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/example/inkpad/internal/brush"
	"github.com/example/inkpad/internal/canvas"
	"github.com/example/inkpad/internal/clipboard"
	"github.com/example/inkpad/internal/export"
	"github.com/example/inkpad/internal/notify"
	"github.com/example/inkpad/internal/session"
	"github.com/example/inkpad/internal/theme"
)

// BoardUI holds the window state for an interactive drawing session.
type BoardUI struct {
	Surface  *canvas.Surface
	Output   string
	Brush    brush.Settings
	Border   bool
	Theme    *theme.Theme
	Notifier *notify.Notifier

	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a BoardUI during creation.
type Option func(*BoardUI)

// WithSurface sets the sheet the window paints onto.
func WithSurface(s *canvas.Surface) Option { return func(b *BoardUI) { b.Surface = s } }

// WithOutput sets the file path used when saving the exported sheet.
func WithOutput(out string) Option { return func(b *BoardUI) { b.Output = out } }

// WithBrush sets the initial brush settings.
func WithBrush(set brush.Settings) Option { return func(b *BoardUI) { b.Brush = set } }

// WithBorder sets the initial export border toggle.
func WithBorder(on bool) Option { return func(b *BoardUI) { b.Border = on } }

// WithTheme sets the window chrome colors.
func WithTheme(t *theme.Theme) Option { return func(b *BoardUI) { b.Theme = t } }

// WithNotifier sets the desktop notifier used after save, copy and export.
func WithNotifier(n *notify.Notifier) Option { return func(b *BoardUI) { b.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(b *BoardUI) { b.onClose = fn } }

// New creates a BoardUI with the provided options.
func New(opts ...Option) *BoardUI {
	b := &BoardUI{
		Brush:    brush.Default(),
		Output:   "inkpad.png",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(b)
	}
	if b.Surface == nil {
		b.Surface = canvas.New()
	}
	b.Brush = b.Brush.Clamped()
	return b
}

// NotifySheetChanged requests a repaint of the UI when the sheet mutates.
func (b *BoardUI) NotifySheetChanged() {
	if b.updateCh == nil {
		return
	}
	select {
	case b.updateCh <- struct{}{}:
	default:
	}
}

func (b *BoardUI) notifyClose() {
	b.closeOnce.Do(func() {
		if b.onClose != nil {
			b.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (b *BoardUI) Run() { driver.Main(b.Main) }

func (b *BoardUI) Main(s screen.Screen) {
	if b.Theme != nil {
		chrome = b.Theme
	}

	// Ensure the toolbar is wide enough to fit the title and the widest
	// option row label so the UI contents are not clipped on start up.
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("Inkpad").Ceil() + 8
	for _, lbl := range []string{"Contrast", "100%", "Density"} {
		w := d.MeasureString(lbl).Ceil() + 24
		if w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}

	width := canvas.Width + toolbarWidth
	height := canvas.Height + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Inkpad"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer b.notifyClose()

	if b.updateCh != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-b.updateCh:
					w.Send(paint.Event{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	// Brush selection and the drawing indicator are read from the session's
	// scheduler goroutine, so they live behind their own mutex.
	var stateMu sync.Mutex
	sizeIdx := nearestSizeIndex(b.Brush.Size)
	densityIdx := nearestIntIndex(b.Brush.Density, densityOptions)
	contrastIdx := nearestIntIndex(b.Brush.Contrast, contrastOptions)
	drawing := false
	border := b.Border

	currentBrush := func() brush.Settings {
		stateMu.Lock()
		defer stateMu.Unlock()
		return brush.Settings{
			Size:     sizeOptions[sizeIdx],
			Density:  densityOptions[densityIdx],
			Contrast: contrastOptions[contrastIdx],
		}
	}

	zoom := fitZoom(width, height)
	sess := session.New(
		session.WithSurface(b.Surface),
		session.WithBrush(currentBrush),
		session.WithOnPaint(func() { w.Send(paint.Event{}) }),
		session.WithOnDrawStart(func() {
			stateMu.Lock()
			drawing = true
			stateMu.Unlock()
			w.Send(paint.Event{})
		}),
		session.WithOnDrawEnd(func() {
			stateMu.Lock()
			drawing = false
			stateMu.Unlock()
			w.Send(paint.Event{})
		}),
	)
	updateMapper := func() {
		r := sheetRect(zoom)
		sess.SetMapper(session.ScaleMapper{
			OffsetX:  float64(r.Min.X),
			OffsetY:  float64(r.Min.Y),
			DisplayW: float64(r.Dx()),
			DisplayH: float64(r.Dy()),
		})
	}
	updateMapper()

	var message string
	var messageUntil time.Time
	var confirmClear bool

	showMessage := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	exportOpts := func() export.Options {
		stateMu.Lock()
		defer stateMu.Unlock()
		return export.Options{IncludeBorder: border}
	}

	keyboardAction = map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() {
		out, err := os.Create(b.Output)
		if err != nil {
			log.Printf("save: %v", err)
			return
		}
		if err := export.EncodePNG(out, b.Surface.Snapshot(), exportOpts()); err != nil {
			log.Printf("save: %v", err)
			if cerr := out.Close(); cerr != nil {
				log.Printf("save: closing file: %v", cerr)
			}
			return
		}
		if err := out.Close(); err != nil {
			log.Printf("save: closing file: %v", err)
			return
		}
		b.Notifier.Save(b.Output)
		showMessage(fmt.Sprintf("saved %s", b.Output))
	})

	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		rendered := export.Render(b.Surface.Snapshot(), exportOpts())
		if err := clipboard.WriteImage(rendered); err != nil {
			log.Printf("copy: %v", err)
			return
		}
		b.Notifier.Copy(b.Output)
		showMessage("sheet copied to clipboard")
	})

	register("clear", shortcutList{{Rune: 'x', Modifiers: key.ModControl}}, func() {
		sess.Clear()
		showMessage("sheet cleared")
	})

	register("border", shortcutList{{Rune: 'b', Modifiers: key.ModControl}}, func() {
		stateMu.Lock()
		border = !border
		on := border
		stateMu.Unlock()
		if on {
			showMessage("export border on")
		} else {
			showMessage("export border off")
		}
	})

	register("pdf", shortcutList{{Rune: 'p', Modifiers: key.ModControl}}, func() {
		path := pdfPath(b.Output)
		out, err := os.Create(path)
		if err != nil {
			log.Printf("pdf: %v", err)
			return
		}
		if err := export.EncodePDF(out, b.Surface.Snapshot(), exportOpts()); err != nil {
			log.Printf("pdf: %v", err)
			if cerr := out.Close(); cerr != nil {
				log.Printf("pdf: closing file: %v", cerr)
			}
			return
		}
		if err := out.Close(); err != nil {
			log.Printf("pdf: closing file: %v", err)
			return
		}
		b.Notifier.Export(path, nil)
		showMessage(fmt.Sprintf("exported %s", path))
	})

	handleShortcut := func(action string) {
		if action == "quit" {
			w.Send(lifecycle.Event{To: lifecycle.StageDead})
			return
		}
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	now := func() int64 { return time.Now().UnixMilli() }

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			zoom = fitZoom(width, height)
			updateMapper()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			stateMu.Lock()
			st := paintState{
				width:          width,
				height:         height,
				sheet:          b.Surface.Snapshot(),
				zoom:           zoom,
				sizeIdx:        sizeIdx,
				densityIdx:     densityIdx,
				contrastIdx:    contrastIdx,
				border:         border,
				drawing:        drawing,
				message:        message,
				messageUntil:   messageUntil,
				handleShortcut: handleShortcut,
			}
			stateMu.Unlock()
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if int(e.Y) >= height-bottomHeight {
				sess.PointerLeave()
				p := image.Point{int(e.X), int(e.Y)}
				hoverShortcut = -1
				for i, sc := range shortcutRects {
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if int(e.X) < toolbarWidth {
				sess.PointerLeave()
				hoverSize = -1
				hoverDensity = -1
				hoverContrast = -1
				hit := hitToolbarRow(int(e.Y))
				switch hit.section {
				case "size":
					idx := clampIndex(hit.index, len(sizeOptions))
					hoverSize = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						stateMu.Lock()
						sizeIdx = idx
						stateMu.Unlock()
						w.Send(paint.Event{})
					}
				case "density":
					idx := clampIndex(hit.index, len(densityOptions))
					hoverDensity = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						stateMu.Lock()
						densityIdx = idx
						stateMu.Unlock()
						w.Send(paint.Event{})
					}
				case "contrast":
					idx := clampIndex(hit.index, len(contrastOptions))
					hoverContrast = idx
					if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
						stateMu.Lock()
						contrastIdx = idx
						stateMu.Unlock()
						w.Send(paint.Event{})
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}

			ev := session.PointerEvent{X: float64(e.X), Y: float64(e.Y), Valid: true, Timestamp: now()}
			if !image.Pt(int(e.X), int(e.Y)).In(sheetRect(zoom)) {
				sess.PointerLeave()
				continue
			}
			switch e.Direction {
			case mouse.DirPress:
				if e.Button == mouse.ButtonLeft {
					sess.PointerDown(ev)
				}
			case mouse.DirRelease:
				if e.Button == mouse.ButtonLeft {
					sess.PointerUp(ev)
				}
			case mouse.DirNone:
				sess.PointerMove(ev)
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			if action, ok := keyboardAction[ks]; ok {
				if action == "clear" {
					if !confirmClear {
						confirmClear = true
						showMessage("press ^X again to clear")
						w.Send(paint.Event{})
						continue
					}
					confirmClear = false
					handleShortcut(action)
					continue
				}
				confirmClear = false
				handleShortcut(action)
				continue
			}
			confirmClear = false
			switch e.Rune {
			case 'q', 'Q':
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		}
	}
}

// pdfPath replaces the output extension with .pdf so the keyboard export
// lands next to the PNG output.
func pdfPath(output string) string {
	ext := filepath.Ext(output)
	if ext == "" {
		return output + ".pdf"
	}
	return strings.TrimSuffix(output, ext) + ".pdf"
}
