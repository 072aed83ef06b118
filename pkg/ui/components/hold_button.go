package components

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// holdTick is how often the progress bar advances while held.
const holdTick = 50 * time.Millisecond

// HoldButton is a button that fires only after being held down for Hold.
// Releasing early, or moving the pointer off the button, resets it.
type HoldButton struct {
	widget.BaseWidget
	Text   string
	Hold   time.Duration
	OnHeld func()

	hovered  bool
	progress float64
	stop     chan struct{} // non-nil while a hold is in progress
}

// NewHoldButton creates a HoldButton. A zero hold fires on press.
func NewHoldButton(text string, hold time.Duration, onHeld func()) *HoldButton {
	b := &HoldButton{
		Text:   text,
		Hold:   hold,
		OnHeld: onHeld,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns the hold progress in [0, 1].
func (b *HoldButton) Progress() float64 {
	return b.progress
}

// SetProgress updates the progress bar
func (b *HoldButton) SetProgress(progress float64) {
	if progress > 1 {
		progress = 1
	}
	b.progress = progress
	b.Refresh()
}

// Holding reports whether a hold is in progress.
func (b *HoldButton) Holding() bool {
	return b.stop != nil
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable
func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	b.cancelHold()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.beginHold()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.cancelHold()
}

func (b *HoldButton) beginHold() {
	if b.stop != nil {
		return
	}
	if b.Hold <= 0 {
		b.SetProgress(1)
		b.fire()
		return
	}

	stop := make(chan struct{})
	b.stop = stop
	b.SetProgress(0)
	go b.track(stop, time.Now())
}

// track advances the progress bar until the hold completes or stop closes.
// All widget state is touched on the fyne goroutine.
func (b *HoldButton) track(stop chan struct{}, start time.Time) {
	ticker := time.NewTicker(holdTick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			progress := float64(time.Since(start)) / float64(b.Hold)
			done := progress >= 1
			fyne.Do(func() {
				if b.stop != stop {
					return
				}
				b.SetProgress(progress)
				if done {
					b.stop = nil
					close(stop)
					b.fire()
				}
			})
			if done {
				return
			}
		}
	}
}

func (b *HoldButton) cancelHold() {
	if b.stop == nil {
		return
	}
	close(b.stop)
	b.stop = nil
	b.SetProgress(0)
}

func (b *HoldButton) fire() {
	if b.OnHeld != nil {
		b.OnHeld()
	}
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	if minWidth < 240 {
		minWidth = 240
	}
	if minHeight < 64 {
		minHeight = 64
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	if r.button.hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}
	r.progressBar.FillColor = theme.Color(theme.ColorNamePrimary)

	size := r.bg.Size()
	progressWidth := size.Width * float32(r.button.progress)
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
