package datatable

import (
	"slices"
	"strings"
)

// Tag names an element's role in the rendered tree.
type Tag string

const (
	TagDiv    Tag = "div"
	TagTable  Tag = "table"
	TagHead   Tag = "thead"
	TagBody   Tag = "tbody"
	TagRow    Tag = "tr"
	TagHeader Tag = "th"
	TagCell   Tag = "td"
	TagLabel  Tag = "label"
	TagInput  Tag = "input"
	TagSpan   Tag = "span"
	TagButton Tag = "button"
)

// Element is one node of the rendered tree. Field and cell payloads hang
// off the element that displays them, so the tree is the only place cell
// state lives.
type Element struct {
	Tag      Tag
	id       string
	classes  []string
	text     string
	children []*Element
	parent   *Element
	page     *Page

	field   *Field
	cell    *Cell
	onClick func()
}

// NewElement creates a detached element.
func NewElement(tag Tag, id string, classes ...string) *Element {
	return &Element{Tag: tag, id: id, classes: classes}
}

func (e *Element) ID() string           { return e.id }
func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) Children() []*Element { return e.children }
func (e *Element) Text() string         { return e.text }
func (e *Element) Field() *Field        { return e.field }
func (e *Element) Cell() *Cell          { return e.cell }
func (e *Element) Attached() bool       { return e.page != nil }

// SetText replaces the element's own text.
func (e *Element) SetText(s string) *Element {
	e.text = s
	return e
}

// OnClick sets the handler Click invokes.
func (e *Element) OnClick(fn func()) *Element {
	e.onClick = fn
	return e
}

// Click invokes the click handler, if any. Reports whether one ran.
func (e *Element) Click() bool {
	if e.onClick == nil {
		return false
	}
	e.onClick()
	return true
}

// Clickable reports whether the element has a click handler.
func (e *Element) Clickable() bool { return e.onClick != nil }

// ----------------------------------------------------------------------------
// classes
// ----------------------------------------------------------------------------

func (e *Element) HasClass(c string) bool { return slices.Contains(e.classes, c) }

// AddClass adds c once; adding a present class is a no-op.
func (e *Element) AddClass(c string) {
	if !e.HasClass(c) {
		e.classes = append(e.classes, c)
	}
}

func (e *Element) RemoveClass(c string) {
	e.classes = slices.DeleteFunc(e.classes, func(x string) bool { return x == c })
}

func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// ----------------------------------------------------------------------------
// structure
// ----------------------------------------------------------------------------

// AppendChild attaches child as the last child of e. A child that already
// has a parent is moved.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.page != nil {
		e.page.register(child)
	}
	return e
}

// RemoveChild detaches child. Ids in its subtree leave the page index.
func (e *Element) RemoveChild(child *Element) bool {
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.parent = nil
	if e.page != nil {
		e.page.unregister(child)
	}
	return true
}

// RemoveLastChild detaches and returns the last child, nil if there is none.
func (e *Element) RemoveLastChild() *Element {
	if len(e.children) == 0 {
		return nil
	}
	last := e.children[len(e.children)-1]
	e.RemoveChild(last)
	return last
}

// Clear detaches every child.
func (e *Element) Clear() {
	for len(e.children) > 0 {
		e.RemoveLastChild()
	}
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips that element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// TextContent concatenates the text of the whole subtree, depth first.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.Walk(func(x *Element) bool {
		b.WriteString(x.text)
		return true
	})
	return b.String()
}

// ============================================================================
// Page
// ============================================================================

// Page is the host a widget mounts into: a set of named containers plus
// an id index over everything attached beneath them.
//
// usage:
//
//	page := NewPage()
//	page.AddContainer("results")
//	reg := NewRegistry(page)
//	table, err := reg.Create(Options{ContainerID: "results"})
type Page struct {
	containers []*Element
	index      map[string]*Element
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{index: make(map[string]*Element)}
}

// AddContainer creates a named mount point. Adding an existing id returns
// the existing container.
func (p *Page) AddContainer(id string) *Element {
	if c, ok := p.index[id]; ok && c.parent == nil {
		return c
	}
	c := NewElement(TagDiv, id)
	p.containers = append(p.containers, c)
	p.register(c)
	return c
}

// Containers returns the mount points in creation order.
func (p *Page) Containers() []*Element { return slices.Clone(p.containers) }

// ElementByID looks up an attached element, nil if none.
func (p *Page) ElementByID(id string) *Element { return p.index[id] }

func (p *Page) register(root *Element) {
	root.Walk(func(e *Element) bool {
		e.page = p
		if e.id != "" {
			p.index[e.id] = e
		}
		return true
	})
}

func (p *Page) unregister(root *Element) {
	root.Walk(func(e *Element) bool {
		e.page = nil
		if e.id != "" && p.index[e.id] == e {
			delete(p.index, e.id)
		}
		return true
	})
}
