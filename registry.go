package datatable

import (
	"context"
	"fmt"
	"slices"

	"go.alis.build/alog"
)

// Registry tracks the tables mounted on one page, keyed by container id.
// It is not safe for concurrent use; drive it from one event loop.
//
// usage:
//
//	reg := NewRegistry(page)
//	if _, err := reg.Create(Options{ContainerID: "results"}); err != nil {
//		return err
//	}
//	doc, _ := reg.ToJSON("results")
type Registry struct {
	page    *Page
	entries map[string]*entry
	order   []string
}

type entry struct {
	opts  Options
	table *Table
}

// NewRegistry creates an empty registry over page.
func NewRegistry(page *Page) *Registry {
	return &Registry{page: page, entries: make(map[string]*entry)}
}

// Page returns the page tables are mounted on.
func (r *Registry) Page() *Page { return r.page }

// Create resolves opts, builds the table and mounts it into its container.
// Nothing is mounted when it fails. A table already mounted in the same
// container is replaced.
func (r *Registry) Create(opts Options) (*Table, error) {
	ctx := context.Background()

	opts = opts.clone()
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	container := r.page.ElementByID(cfg.ContainerID)
	if container == nil || container.Parent() != nil {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, cfg.ContainerID)
	}
	t, err := build(cfg, r.page)
	if err != nil {
		return nil, err
	}

	if old, ok := r.entries[cfg.ContainerID]; ok {
		alog.Infof(ctx, "datatable %s: replacing generation %s", cfg.ContainerID, old.table.generation)
		old.table.onReset = nil
	} else {
		r.order = append(r.order, cfg.ContainerID)
	}
	container.Clear()
	container.AppendChild(t.root)

	id := cfg.ContainerID
	t.onReset = func() {
		if _, err := r.Reset(id); err != nil {
			alog.Errorf(context.Background(), "datatable %s: reset: %v", id, err)
		}
	}
	r.entries[id] = &entry{opts: opts, table: t}

	alog.Infof(ctx, "datatable %s: created %dx%d with %d fields (generation %s)",
		id, t.NumRows(), t.NumColumns(), len(cfg.Schema), t.generation)
	return t, nil
}

// Get returns the table mounted in containerID.
func (r *Registry) Get(containerID string) (*Table, error) {
	e, ok := r.entries[containerID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstance, containerID)
	}
	return e.table, nil
}

// IDs lists the container ids with a mounted table, in creation order.
func (r *Registry) IDs() []string { return slices.Clone(r.order) }

// Reset rebuilds a table from the options it was created with, dropping
// every structural and field edit. The previous *Table is unmounted; use
// the returned one.
func (r *Registry) Reset(containerID string) (*Table, error) {
	e, ok := r.entries[containerID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstance, containerID)
	}
	alog.Infof(context.Background(), "datatable %s: reset generation %s", containerID, e.table.generation)
	return r.Create(e.opts)
}

// Destroy unmounts a table and forgets it.
func (r *Registry) Destroy(containerID string) error {
	e, ok := r.entries[containerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownInstance, containerID)
	}
	if parent := e.table.root.Parent(); parent != nil {
		parent.RemoveChild(e.table.root)
	}
	e.table.onReset = nil
	delete(r.entries, containerID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == containerID })
	alog.Infof(context.Background(), "datatable %s: destroyed generation %s", containerID, e.table.generation)
	return nil
}

// ----------------------------------------------------------------------------
// container-addressed accessors
// ----------------------------------------------------------------------------

// NumRows returns the data row count of a mounted table.
func (r *Registry) NumRows(containerID string) (int, error) {
	t, err := r.Get(containerID)
	if err != nil {
		return 0, err
	}
	return t.NumRows(), nil
}

// NumColumns returns the data column count of a mounted table.
func (r *Registry) NumColumns(containerID string) (int, error) {
	t, err := r.Get(containerID)
	if err != nil {
		return 0, err
	}
	return t.NumColumns(), nil
}

// CellData reads one data cell of a mounted table.
func (r *Registry) CellData(containerID string, row, col int) (Record, error) {
	t, err := r.Get(containerID)
	if err != nil {
		return Record{}, err
	}
	return t.CellData(row, col)
}

// DisableField disables one field of a mounted table.
func (r *Registry) DisableField(containerID string, row, col, field int) error {
	t, err := r.Get(containerID)
	if err != nil {
		return err
	}
	return t.DisableField(row, col, field)
}

// EnableField re-enables one field of a mounted table.
func (r *Registry) EnableField(containerID string, row, col, field int) error {
	t, err := r.Get(containerID)
	if err != nil {
		return err
	}
	return t.EnableField(row, col, field)
}

// ToJSON exports a mounted table.
func (r *Registry) ToJSON(containerID string) (string, error) {
	t, err := r.Get(containerID)
	if err != nil {
		return "", err
	}
	return t.ToJSON()
}
