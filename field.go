package datatable

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one interactive control. Its value lives only in the control:
// a textinput for Number and Text, a flag for Boolean, a selected index
// for Enum.
type Field struct {
	desc    FieldDescriptor
	el      *Element
	numbers *NumberParser

	input    textinput.Model
	checked  bool
	selected int

	disabled bool
	focused  bool
	onChange func(value any)
}

// NewField creates the control for desc, showing current (nil = the
// descriptor's default). numbers may be nil for English parsing.
// Kinds outside the closed set fail here rather than on first use.
func NewField(desc FieldDescriptor, current any, numbers *NumberParser) (*Field, error) {
	if numbers == nil {
		numbers = defaultNumbers
	}
	f := &Field{desc: desc, numbers: numbers}

	switch desc.Kind {
	case Number, Text:
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = desc.Placeholder
		f.input = ti
	case Boolean:
	case Enum:
		if len(desc.Options) == 0 {
			return nil, &UnsupportedFieldTypeError{Field: desc.Name, Kind: desc.Kind, Reason: "enum has no options"}
		}
	default:
		return nil, &UnsupportedFieldTypeError{Field: desc.Name, Kind: desc.Kind}
	}

	if current == nil {
		current = desc.Default
	}
	if err := f.SetValue(current); err != nil {
		return nil, err
	}

	f.el = NewElement(TagInput, "", "dt-field-"+desc.Kind.String())
	f.el.field = f
	return f, nil
}

func (f *Field) Name() string                { return f.desc.Name }
func (f *Field) Kind() Kind                  { return f.desc.Kind }
func (f *Field) Descriptor() FieldDescriptor { return f.desc }
func (f *Field) Element() *Element           { return f.el }
func (f *Field) Disabled() bool              { return f.disabled }
func (f *Field) Focused() bool               { return f.focused }

// Read returns the field's current value: int or nil for Number, trimmed
// string for Text, bool for Boolean, the selected option for Enum.
// A disabled field always reads nil.
func (f *Field) Read() any {
	if f.disabled {
		return nil
	}
	switch f.desc.Kind {
	case Number:
		if n, ok := f.numbers.ParseInt(f.input.Value()); ok {
			return n
		}
		return nil
	case Text:
		return strings.TrimSpace(f.input.Value())
	case Boolean:
		return f.checked
	case Enum:
		return f.desc.Options[f.selected]
	}
	return nil
}

// Raw returns what the control displays, regardless of disabled state.
func (f *Field) Raw() string {
	switch f.desc.Kind {
	case Number, Text:
		return f.input.Value()
	case Boolean:
		return strconv.FormatBool(f.checked)
	case Enum:
		return f.desc.Options[f.selected]
	}
	return ""
}

// SetValue writes v into the control. Number accepts int or string, Text
// string, Boolean bool, Enum one of its options. nil resets the control.
func (f *Field) SetValue(v any) error {
	switch f.desc.Kind {
	case Number:
		switch x := v.(type) {
		case nil:
			f.input.SetValue("")
		case int:
			f.input.SetValue(f.numbers.FormatInt(x))
		case string:
			f.input.SetValue(x)
		default:
			return fmt.Errorf("field %q: %w: %T for %s", f.desc.Name, ErrInvalidValue, v, f.desc.Kind)
		}
	case Text:
		switch x := v.(type) {
		case nil:
			f.input.SetValue("")
		case string:
			f.input.SetValue(x)
		default:
			return fmt.Errorf("field %q: %w: %T for %s", f.desc.Name, ErrInvalidValue, v, f.desc.Kind)
		}
	case Boolean:
		switch x := v.(type) {
		case nil:
			f.checked = false
		case bool:
			f.checked = x
		default:
			return fmt.Errorf("field %q: %w: %T for %s", f.desc.Name, ErrInvalidValue, v, f.desc.Kind)
		}
	case Enum:
		switch x := v.(type) {
		case nil:
			f.selected = 0
		case string:
			i := slices.Index(f.desc.Options, x)
			if i < 0 {
				return fmt.Errorf("field %q: %w: %q is not an option", f.desc.Name, ErrInvalidValue, x)
			}
			f.selected = i
		default:
			return fmt.Errorf("field %q: %w: %T for %s", f.desc.Name, ErrInvalidValue, v, f.desc.Kind)
		}
	}
	return nil
}

// SetDisabled disables or enables the control. Disabling drops focus
// without firing the change listener; the displayed value is kept.
func (f *Field) SetDisabled(disabled bool) {
	f.disabled = disabled
	if disabled && f.focused {
		f.focused = false
		f.input.Blur()
	}
	if disabled {
		f.el.AddClass("dt-disabled")
	} else {
		f.el.RemoveClass("dt-disabled")
	}
}

// OnChange sets the listener fired when the field loses focus.
// Passing nil detaches it.
func (f *Field) OnChange(fn func(value any)) *Field {
	f.onChange = fn
	return f
}

// Focus gives the field keyboard focus. Disabled fields refuse it;
// check Focused afterwards.
func (f *Field) Focus() tea.Cmd {
	if f.disabled || f.focused {
		return nil
	}
	f.focused = true
	if f.desc.Kind == Number || f.desc.Kind == Text {
		return f.input.Focus()
	}
	return nil
}

// Blur takes focus away and fires the change listener once.
// Blurring an unfocused field does nothing.
func (f *Field) Blur() {
	if !f.focused {
		return
	}
	f.focused = false
	f.input.Blur()
	if f.onChange != nil {
		f.onChange(f.Read())
	}
}

// Toggle flips a Boolean field.
func (f *Field) Toggle() {
	if f.desc.Kind == Boolean && !f.disabled {
		f.checked = !f.checked
	}
}

// Next selects the next option of an Enum field, wrapping around.
func (f *Field) Next() {
	if f.desc.Kind == Enum && !f.disabled {
		f.selected = (f.selected + 1) % len(f.desc.Options)
	}
}

// Prev selects the previous option of an Enum field, wrapping around.
func (f *Field) Prev() {
	if f.desc.Kind == Enum && !f.disabled {
		n := len(f.desc.Options)
		f.selected = (f.selected + n - 1) % n
	}
}

// Update routes a message to a focused field.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	if !f.focused || f.disabled {
		return nil
	}
	switch f.desc.Kind {
	case Number, Text:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	case Boolean:
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == " " || k.String() == "enter") {
			f.Toggle()
		}
	case Enum:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "right", "l", " ":
				f.Next()
			case "left", "h":
				f.Prev()
			}
		}
	}
	return nil
}

// View renders the control without styling.
func (f *Field) View() string {
	switch f.desc.Kind {
	case Number, Text:
		if f.disabled {
			return f.input.Value()
		}
		return f.input.View()
	case Boolean:
		if f.checked {
			return "☑"
		}
		return "☐"
	case Enum:
		opt := f.desc.Options[f.selected]
		if f.focused {
			return "◂ " + opt + " ▸"
		}
		return opt
	}
	return ""
}
