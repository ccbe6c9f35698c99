package datatable

import (
	"context"

	"go.alis.build/alog"
)

// ChangeFunc judges a field's value when the field loses focus. row and
// col are 0-indexed data coordinates. A nil return clears the field's
// error; a non-nil one is shown as its message, or "invalid" when that is
// empty. A panic is not caught.
type ChangeFunc func(value any, row, col int) error

// invalidMessage stands in for an error whose message is empty.
const invalidMessage = "invalid"

// bindValidation connects field i's change notification to its callback.
// Fields without a callback get no listener at all.
func bindValidation(c *Cell, i int) {
	f := c.fields[i]
	check := f.desc.OnChange
	if check == nil {
		return
	}
	f.OnChange(func(value any) {
		if err := check(value, c.Row(), c.Col()); err != nil {
			alog.Debugf(context.Background(), "datatable %s: cell (%d, %d) field %q invalid: %v",
				c.containerID, c.Row(), c.Col(), f.Name(), err)
			msg := err.Error()
			if msg == "" {
				msg = invalidMessage
			}
			_ = c.SetError(i, msg)
			return
		}
		_ = c.ClearError(i)
	})
}
