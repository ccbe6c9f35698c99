package datatable

import tea "github.com/charmbracelet/bubbletea"

// focusItem is either a field control or a clickable button.
type focusItem struct {
	field  *Field
	button *Element
}

func (it focusItem) element() *Element {
	if it.field != nil {
		return it.field.el
	}
	return it.button
}

func (it focusItem) available() bool {
	return it.field == nil || !it.field.Disabled()
}

// FocusManager keeps keyboard focus across the fields and buttons of a
// rendered tree, in document order. Moving focus blurs the previous field
// first, which is what fires its change notification.
//
// usage:
//
//	fm := NewFocusManager().Collect(table.Root())
//	cmd := fm.Next()
//	cmd = fm.Update(keyMsg)
type FocusManager struct {
	items    []focusItem
	current  int // -1 when nothing is focused
	onChange func(index int)
}

// NewFocusManager creates a focus manager with nothing to focus.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// OnChange sets a callback that fires when focus changes.
func (fm *FocusManager) OnChange(fn func(index int)) *FocusManager {
	fm.onChange = fn
	return fm
}

// Collect rebuilds the focus order from root. Focus stays on the same
// element if it is still in the tree; otherwise nothing is focused.
func (fm *FocusManager) Collect(root *Element) *FocusManager {
	var keep *Element
	if fm.current >= 0 {
		keep = fm.items[fm.current].element()
	}

	fm.items = fm.items[:0]
	fm.current = -1
	root.Walk(func(e *Element) bool {
		switch {
		case e.field != nil:
			fm.items = append(fm.items, focusItem{field: e.field})
		case e.Clickable():
			fm.items = append(fm.items, focusItem{button: e})
		}
		return true
	})

	for i, it := range fm.items {
		if it.element() == keep {
			fm.current = i
		}
	}
	return fm
}

// Len returns the number of focus targets.
func (fm *FocusManager) Len() int { return len(fm.items) }

// Current returns the focused index, -1 if none.
func (fm *FocusManager) Current() int { return fm.current }

// Field returns the focused field, nil when a button or nothing is focused.
func (fm *FocusManager) Field() *Field {
	if fm.current < 0 {
		return nil
	}
	return fm.items[fm.current].field
}

// Button returns the focused button, nil otherwise.
func (fm *FocusManager) Button() *Element {
	if fm.current < 0 {
		return nil
	}
	return fm.items[fm.current].button
}

// Next moves focus forward, skipping disabled fields and wrapping.
func (fm *FocusManager) Next() tea.Cmd { return fm.move(1) }

// Prev moves focus backward, skipping disabled fields and wrapping.
func (fm *FocusManager) Prev() tea.Cmd { return fm.move(-1) }

func (fm *FocusManager) move(delta int) tea.Cmd {
	n := len(fm.items)
	if n == 0 {
		return nil
	}
	i := fm.current
	if i < 0 && delta < 0 {
		i = 0
	}
	for range n {
		i = (i + n + delta) % n
		if fm.items[i].available() {
			return fm.Focus(i)
		}
	}
	return nil
}

// Focus moves focus to index, blurring the current target first.
// Out-of-range indexes and disabled fields are ignored.
func (fm *FocusManager) Focus(index int) tea.Cmd {
	if index < 0 || index >= len(fm.items) || index == fm.current {
		return nil
	}
	if !fm.items[index].available() {
		return nil
	}
	fm.Blur()

	fm.current = index
	var cmd tea.Cmd
	it := fm.items[index]
	if it.field != nil {
		cmd = it.field.Focus()
	} else {
		it.button.AddClass("dt-focused")
	}
	if fm.onChange != nil {
		fm.onChange(index)
	}
	return cmd
}

// Blur drops focus. A focused field fires its change notification.
func (fm *FocusManager) Blur() {
	if fm.current < 0 {
		return
	}
	it := fm.items[fm.current]
	fm.current = -1
	if it.field != nil {
		it.field.Blur()
	} else {
		it.button.RemoveClass("dt-focused")
	}
}

// Update routes a message to the focused field. Buttons take no input.
func (fm *FocusManager) Update(msg tea.Msg) tea.Cmd {
	if f := fm.Field(); f != nil {
		return f.Update(msg)
	}
	return nil
}
