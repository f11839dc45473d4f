package widgets

import (
	"github.com/vango-dev/domtree/internal/errors"
	"github.com/vango-dev/domtree/pkg/vdom"
)

// TableOptions configures NewTable.
type TableOptions struct {
	// Rows and Cols size an empty table when no data is given.
	Rows, Cols int

	// Caption adds a caption element.
	Caption string

	// Head uses the first data row as header.
	Head bool

	// Foot uses the last data row as footer.
	Foot bool
}

// Table is a table element with a body of rows and cells. The body,
// header, footer and caption are named children of the table node.
type Table struct {
	node *vdom.Node
	body *vdom.Node
}

// NewTable creates a table from rows of cell values.
func NewTable(data [][]any, opts TableOptions) (*Table, error) {
	t := &Table{body: vdom.Tbody()}
	t.node = vdom.Table(vdom.Named("body", t.body))

	if len(data) == 0 {
		rows := opts.Rows
		if opts.Head {
			rows++
		}
		if opts.Foot {
			rows++
		}
		for i := 0; i < rows; i++ {
			data = append(data, make([]any, opts.Cols))
		}
	}
	rows := append([][]any(nil), data...)

	if opts.Caption != "" {
		t.SetCaption(opts.Caption)
	}
	if opts.Head && len(rows) > 0 {
		t.part("header", vdom.Thead(), vdom.Th, rows[0], t.body.Index())
		rows = rows[1:]
	}
	if opts.Foot && len(rows) > 0 {
		t.part("footer", vdom.Tfoot(), vdom.Td, rows[len(rows)-1], t.node.Len())
		rows = rows[:len(rows)-1]
	}
	if err := t.Populate(rows); err != nil {
		return nil, err
	}
	return t, nil
}

// Node returns the table element.
func (t *Table) Node() *vdom.Node { return t.node }

// Body returns the tbody element.
func (t *Table) Body() *vdom.Node { return t.body }

// Rows returns the number of body rows.
func (t *Table) Rows() int { return t.body.Len() }

func (t *Table) part(name string, part *vdom.Node, cell func(...any) *vdom.Node, values []any, at int) {
	row := vdom.Tr()
	for _, v := range values {
		row.Append(cell(v))
	}
	part.Append(row)
	t.node.Insert(part, vdom.At(at), vdom.WithName(name))
}

// Header returns the thead element, or nil.
func (t *Table) Header() *vdom.Node { return t.node.NamedNode("header") }

// Footer returns the tfoot element, or nil.
func (t *Table) Footer() *vdom.Node { return t.node.NamedNode("footer") }

// SetCaption adds or replaces the caption.
func (t *Table) SetCaption(caption any) {
	if c := t.node.NamedNode("caption"); c != nil {
		c.Empty()
		c.Append(caption)
		return
	}
	t.node.Insert(vdom.Caption(caption), vdom.AtStart(), vdom.WithName("caption"))
}

// Populate replaces the body rows with data. Short rows are padded with
// empty cells to the width of the longest row.
func (t *Table) Populate(data [][]any) error {
	if data == nil {
		return errors.New("E132").WithDetail("table data is nil, use Clear to empty the table")
	}
	t.Clear()
	width := 0
	for _, row := range data {
		width = max(width, len(row))
	}
	for _, row := range data {
		tr := vdom.Tr()
		for i := 0; i < width; i++ {
			td := vdom.Td()
			if i < len(row) && row[i] != nil {
				if err := td.Append(row[i]); err != nil {
					return err
				}
			}
			tr.Append(td)
		}
		t.body.Append(tr)
	}
	return nil
}

// Clear removes all body rows.
func (t *Table) Clear() {
	t.body.Empty()
}

// AddRow appends a row of cells.
func (t *Table) AddRow(values ...any) error {
	tr := vdom.Tr()
	for _, v := range values {
		if err := tr.Append(vdom.Td(v)); err != nil {
			return err
		}
	}
	return t.body.Append(tr)
}

func (t *Table) row(i int) (*vdom.Node, error) {
	c, err := t.body.Child(i)
	if err != nil {
		return nil, err
	}
	return c.(*vdom.Node), nil
}

func (t *Table) cell(r, c int) (*vdom.Node, error) {
	row, err := t.row(r)
	if err != nil {
		return nil, err
	}
	cell, err := row.Child(c)
	if err != nil {
		return nil, err
	}
	return cell.(*vdom.Node), nil
}

// PopRow removes row i and returns the first value of each cell.
// Negative indexes count from the end.
func (t *Table) PopRow(i int) ([]any, error) {
	row, err := t.row(i)
	if err != nil {
		return nil, err
	}
	row.Remove()
	out := make([]any, 0, row.Len())
	for _, cell := range row.Children() {
		out = append(out, cell.First())
	}
	return out, nil
}

// PopCell removes a cell and returns its first value.
func (t *Table) PopCell(r, c int) (any, error) {
	cell, err := t.cell(r, c)
	if err != nil {
		return nil, err
	}
	cell.Remove()
	return cell.First(), nil
}

// RowClass adds class to row i, or to every row when i is negative.
func (t *Table) RowClass(class string, i int) error {
	if i < 0 {
		for _, row := range t.body.Children() {
			row.AddClass(class)
		}
		return nil
	}
	row, err := t.row(i)
	if err != nil {
		return err
	}
	return row.AddClass(class)
}

// ColClass adds class to the non-empty cells of column c, or to every
// cell when c is negative.
func (t *Table) ColClass(class string, c int) error {
	for r, row := range t.body.Children() {
		if c < 0 {
			for _, cell := range row.Children() {
				cell.AddClass(class)
			}
			continue
		}
		cell, err := t.cell(r, c)
		if err != nil {
			return err
		}
		if cell.Len() > 0 {
			cell.AddClass(class)
		}
	}
	return nil
}

// MapCells replaces the content of every non-empty body cell with
// fn applied to its first value.
func (t *Table) MapCells(fn func(any) any) error {
	for _, row := range t.body.Children() {
		for _, cell := range row.Children() {
			if cell.Len() == 0 {
				continue
			}
			v := fn(cell.First())
			cell.Empty()
			if err := cell.Append(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Scope turns the given body cells into header cells with a scope
// attribute ("col" or "row"). Cells are addressed as {row, col}.
func (t *Table) Scope(scope string, cells ...[2]int) error {
	for _, rc := range cells {
		td, err := t.cell(rc[0], rc[1])
		if err != nil {
			return err
		}
		th := vdom.Th()
		attrs := td.Attrs()
		for _, key := range attrs.Keys() {
			var v any
			if key == "style" {
				v = attrs.Style()
			} else {
				v, _ = attrs.Get(key)
			}
			if err := th.SetAttr(key, v); err != nil {
				return err
			}
		}
		if err := th.SetAttr("scope", scope); err != nil {
			return err
		}
		if err := td.MoveChildren(th, 0, -1); err != nil {
			return err
		}
		if err := td.ReplaceWith(th); err != nil {
			return err
		}
	}
	return nil
}
