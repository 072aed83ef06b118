package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ListManager is a selectable list with add and remove buttons. The caller
// owns the data; the list reads it through Length and RenderItem.
type ListManager struct {
	list        *widget.List
	selectedIdx int
	length      func() int
	renderItem  func(int) string
	onAdd       func()
	onRemove    func(int)
	onSelect    func(int)
}

// ListManagerConfig configures the list manager
type ListManagerConfig struct {
	Length     func() int       // number of items
	RenderItem func(int) string // display text for an item
	OnAdd      func()           // add button pressed
	OnRemove   func(int)        // remove button pressed with an item selected
	OnSelect   func(int)        // selection changed; -1 when cleared
	MinHeight  float32
}

// NewListManager creates a list manager and the container that shows it.
func NewListManager(config ListManagerConfig) (*ListManager, *fyne.Container) {
	lm := &ListManager{
		selectedIdx: -1,
		length:      config.Length,
		renderItem:  config.RenderItem,
		onAdd:       config.OnAdd,
		onRemove:    config.OnRemove,
		onSelect:    config.OnSelect,
	}

	lm.list = widget.NewList(
		lm.length,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < lm.length() {
				o.(*widget.Label).SetText(lm.renderItem(i))
			}
		})

	lm.list.OnSelected = func(id widget.ListItemID) {
		lm.setSelected(id)
	}
	lm.list.OnUnselected = func(id widget.ListItemID) {
		if lm.selectedIdx == id {
			lm.setSelected(-1)
		}
	}

	plusButton := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		if lm.onAdd != nil {
			lm.onAdd()
		}
	})
	minusButton := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), lm.RemoveSelected)

	minHeight := config.MinHeight
	if minHeight <= 0 {
		minHeight = 150
	}
	listScroll := container.NewScroll(lm.list)
	listScroll.SetMinSize(fyne.NewSize(0, minHeight))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return lm, container.NewBorder(nil, container.NewHBox(plusButton, minusButton), nil, nil, listWithBorder)
}

// Refresh redraws the list, dropping a selection that no longer exists.
func (lm *ListManager) Refresh() {
	if lm.selectedIdx >= lm.length() {
		lm.list.UnselectAll()
		lm.setSelected(-1)
	}
	lm.list.Refresh()
}

// Selected returns the selected index, or -1.
func (lm *ListManager) Selected() int {
	return lm.selectedIdx
}

// Select selects item i.
func (lm *ListManager) Select(i int) {
	if i < 0 || i >= lm.length() {
		return
	}
	lm.list.Select(i)
	lm.setSelected(i)
}

// RemoveSelected hands the selected item to OnRemove and clears the selection.
func (lm *ListManager) RemoveSelected() {
	idx := lm.selectedIdx
	if idx < 0 || idx >= lm.length() {
		return
	}
	lm.list.UnselectAll()
	lm.setSelected(-1)
	if lm.onRemove != nil {
		lm.onRemove(idx)
	}
	lm.list.Refresh()
}

func (lm *ListManager) setSelected(i int) {
	if lm.selectedIdx == i {
		return
	}
	lm.selectedIdx = i
	if lm.onSelect != nil {
		lm.onSelect(i)
	}
}
