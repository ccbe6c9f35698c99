package datatable

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.alis.build/alog"
)

// maxColumnWidth caps a rendered column; longer text is truncated.
const maxColumnWidth = 32

// Model is the bubbletea front end for one mounted table.
//
// usage:
//
//	m := NewModel(reg, "results", ThemeDark)
//	final, err := tea.NewProgram(m).Run()
//	if final.(Model).Exported() { ... }
type Model struct {
	reg         *Registry
	containerID string
	theme       Theme
	focus       *FocusManager

	width    int
	status   string
	exported bool
}

// NewModel binds a model to the table mounted in containerID.
func NewModel(reg *Registry, containerID string, theme Theme) Model {
	m := Model{
		reg:         reg,
		containerID: containerID,
		theme:       theme,
		focus:       NewFocusManager(),
		width:       80,
	}
	if t, err := reg.Get(containerID); err == nil {
		m.focus.Collect(t.Root())
	}
	return m
}

// Exported reports whether the user quit with an export.
func (m Model) Exported() bool { return m.exported }

// Focus returns the model's focus manager.
func (m Model) Focus() *FocusManager { return m.focus }

// Init focuses the first target.
func (m Model) Init() tea.Cmd {
	return m.focus.Next()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.focus.Update(msg)
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch k.String() {
	case "ctrl+c", "esc":
		m.focus.Blur()
		return m, tea.Quit
	case "ctrl+e":
		m.focus.Blur()
		m.exported = true
		return m, tea.Quit
	case "tab":
		cmd = m.focus.Next()
	case "shift+tab":
		cmd = m.focus.Prev()
	case "ctrl+n":
		cmd = m.act(ActionAddRow)
	case "ctrl+d":
		cmd = m.act(ActionDeleteRow)
	case "ctrl+l":
		cmd = m.act(ActionAddColumn)
	case "ctrl+k":
		cmd = m.act(ActionDeleteColumn)
	case "ctrl+r":
		cmd = m.act(ActionReset)
	case "enter", " ":
		if btn := m.focus.Button(); btn != nil {
			cmd = m.click(btn)
			break
		}
		cmd = m.focus.Update(k)
	default:
		cmd = m.focus.Update(k)
	}
	return m, cmd
}

// act runs a structural edit from a shortcut. The focused field is blurred
// first so its change notification sees the grid as it was.
func (m *Model) act(a Action) tea.Cmd {
	t, err := m.reg.Get(m.containerID)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	index := m.focus.Current()
	m.focus.Blur()
	if t.Do(a) {
		m.status = ""
	} else {
		m.status = "nothing to " + strings.ReplaceAll(string(a), "-", " ")
	}
	return m.refocus(index)
}

func (m *Model) click(btn *Element) tea.Cmd {
	index := m.focus.Current()
	if !btn.Click() {
		return nil
	}
	alog.Debugf(context.Background(), "datatable %s: clicked %s", m.containerID, btn.ID())
	m.status = ""
	return m.refocus(index)
}

// refocus rebuilds the focus order from whatever table is now mounted and
// puts focus back at index, clamped.
func (m *Model) refocus(index int) tea.Cmd {
	t, err := m.reg.Get(m.containerID)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.focus.Collect(t.Root())
	if m.focus.Current() >= 0 || index < 0 {
		return nil
	}
	if n := m.focus.Len(); index >= n {
		index = n - 1
	}
	return m.focus.Focus(index)
}

// ============================================================================
// view
// ============================================================================

func (m Model) View() string {
	t, err := m.reg.Get(m.containerID)
	if err != nil {
		return m.theme.Error.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.viewControls(t))
	b.WriteString("\n\n")
	b.WriteString(m.viewGrid(t))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Muted.Render(m.status))
		b.WriteString("\n")
	}
	help := "tab/shift+tab move · enter/space press · ctrl+n/ctrl+d row · ctrl+l/ctrl+k column · ctrl+r reset · ctrl+e export · esc quit"
	if m.width > 0 {
		help = runewidth.Truncate(help, m.width, "…")
	}
	b.WriteString(m.theme.Muted.Render(help))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewControls(t *Table) string {
	var parts []string
	for _, btn := range t.controls.Children() {
		label := "[" + btn.Text() + "]"
		style := m.theme.Button
		if btn.HasClass("dt-focused") {
			style = m.theme.Accent.Padding(0, 1)
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// viewGrid lays the rows out as columns of multi-line blocks, each column
// as wide as its widest line.
func (m Model) viewGrid(t *Table) string {
	rows := t.rows()
	blocks := make([][][]string, len(rows))
	widths := make([]int, t.colCount)
	heights := make([]int, len(rows))

	for r, tr := range rows {
		cells := tr.Children()
		blocks[r] = make([][]string, len(cells))
		for c, el := range cells {
			lines := m.viewCell(el)
			blocks[r][c] = lines
			heights[r] = max(heights[r], len(lines))
			for _, l := range lines {
				widths[c] = max(widths[c], lipgloss.Width(l))
			}
		}
	}

	sep := m.theme.Border.Render(" │ ")
	var out []string
	for r := range blocks {
		for line := 0; line < heights[r]; line++ {
			var b strings.Builder
			for c, lines := range blocks[r] {
				if c > 0 {
					b.WriteString(sep)
				}
				s := ""
				if line < len(lines) {
					s = lines[line]
				}
				b.WriteString(s)
				if pad := widths[c] - lipgloss.Width(s); pad > 0 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			out = append(out, b.String())
		}
		if r == 0 || r < len(blocks)-1 {
			out = append(out, m.theme.Border.Render(rule(widths)))
		}
	}
	return strings.Join(out, "\n")
}

func rule(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

func (m Model) viewCell(el *Element) []string {
	if el.Cell() == nil {
		// header
		for _, c := range el.Children() {
			if f := c.Field(); f != nil {
				return []string{m.viewField(f)}
			}
		}
		return []string{m.theme.Header.Render(clip(el.Text()))}
	}

	cell := el.Cell()
	var lines []string
	for i, f := range cell.Fields() {
		label := m.theme.Muted.Render(clip(f.Name()) + ":")
		if cell.Invalid() {
			label = m.theme.Invalid.Render(clip(f.Name()) + ":")
		}
		lines = append(lines, label+" "+m.viewField(f))
		if msg := cell.Error(i); msg != "" {
			lines = append(lines, m.theme.Error.Render("! "+clip(msg)))
		}
		if help := f.Descriptor().Help; help != "" && f.Focused() {
			lines = append(lines, m.theme.Muted.Render("? "+clip(help)))
		}
	}
	return lines
}

func (m Model) viewField(f *Field) string {
	switch {
	case f.Focused():
		return m.theme.Accent.Render(f.View())
	case f.Disabled():
		v := f.Raw()
		if v == "" {
			v = "-"
		}
		return m.theme.Muted.Strikethrough(true).Render(clip(v))
	}
	if (f.Kind() == Number || f.Kind() == Text) && f.Raw() == "" {
		return m.theme.Muted.Render(clip(f.Descriptor().Placeholder))
	}
	if f.Kind() == Number {
		if n, ok := f.numbers.ParseInt(f.Raw()); ok {
			return m.theme.Base.Render(f.numbers.FormatInt(n))
		}
	}
	return m.theme.Base.Render(clip(f.View()))
}

// clip truncates plain text to the column cap.
func clip(s string) string {
	return runewidth.Truncate(s, maxColumnWidth, "…")
}

// String summarizes the model for logs.
func (m Model) String() string {
	t, err := m.reg.Get(m.containerID)
	if err != nil {
		return fmt.Sprintf("datatable %s: %v", m.containerID, err)
	}
	return fmt.Sprintf("datatable %s: %dx%d focus %d", m.containerID, t.NumRows(), t.NumColumns(), m.focus.Current())
}
