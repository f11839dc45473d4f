package vdom

import (
	"github.com/vango-dev/domtree/internal/errors"
)

func (n *Node) requireElement(op string) error {
	if n.kind != KindElement || n.attrs == nil {
		return errors.New("E106").WithDetailf("%s on %s", op, n.kind)
	}
	return nil
}

// Attrs returns the attribute container of n. Writes through it are not
// observed by the render cache: use the Node mutators or call Invalidate.
func (n *Node) Attrs() *Attrs {
	if n.attrs == nil {
		return NewAttrs()
	}
	return n.attrs
}

// SetAttr sets one attribute.
func (n *Node) SetAttr(key string, value any) error {
	if err := n.requireElement("SetAttr"); err != nil {
		return err
	}
	if err := n.attrs.Set(key, value); err != nil {
		return err
	}
	n.markDirty()
	return nil
}

// Attr sets several attributes. Empty attributes are skipped.
func (n *Node) Attr(attrs ...Attr) error {
	if err := n.requireElement("Attr"); err != nil {
		return err
	}
	for _, a := range attrs {
		if a.IsEmpty() {
			continue
		}
		if err := n.attrs.Set(a.Key, a.Value); err != nil {
			n.markDirty()
			return err
		}
	}
	n.markDirty()
	return nil
}

// GetAttr returns the value of an attribute.
func (n *Node) GetAttr(key string) (any, bool) {
	if n.attrs == nil {
		return nil, false
	}
	return n.attrs.Get(key)
}

// RemoveAttr deletes attributes.
func (n *Node) RemoveAttr(keys ...string) error {
	if err := n.requireElement("RemoveAttr"); err != nil {
		return err
	}
	for _, k := range keys {
		n.attrs.Remove(k)
	}
	n.markDirty()
	return nil
}

// ID returns the id attribute, or "".
func (n *Node) ID() string {
	v, ok := n.GetAttr("id")
	if !ok {
		return ""
	}
	return attrToString(v)
}

// SetID sets the id attribute.
func (n *Node) SetID(id string) error {
	return n.SetAttr("id", id)
}

// IsID reports whether the id attribute equals id.
func (n *Node) IsID(id string) bool {
	return id != "" && n.ID() == id
}

// AddClass adds class tokens.
func (n *Node) AddClass(classes ...string) error {
	if err := n.requireElement("AddClass"); err != nil {
		return err
	}
	n.attrs.AddClass(classes...)
	n.markDirty()
	return nil
}

// RemoveClass removes class tokens.
func (n *Node) RemoveClass(classes ...string) error {
	if err := n.requireElement("RemoveClass"); err != nil {
		return err
	}
	n.attrs.RemoveClass(classes...)
	n.markDirty()
	return nil
}

// ToggleClass flips one class token.
func (n *Node) ToggleClass(class string) error {
	if err := n.requireElement("ToggleClass"); err != nil {
		return err
	}
	n.attrs.ToggleClass(class)
	n.markDirty()
	return nil
}

// HasClass reports whether the class token is set.
func (n *Node) HasClass(class string) bool {
	return n.attrs != nil && n.attrs.HasClass(class)
}

// CSS merges inline style declarations.
func (n *Node) CSS(props map[string]string) error {
	return n.SetAttr("style", props)
}

// Hide sets display: none.
func (n *Node) Hide() error {
	return n.SetAttr("style", StyleProp{Property: "display", Value: "none"})
}

// Show sets the display property, "block" when display is empty.
func (n *Node) Show(display string) error {
	if display == "" {
		display = "block"
	}
	return n.SetAttr("style", StyleProp{Property: "display", Value: display})
}

// Toggle shows a hidden element and hides a visible one.
func (n *Node) Toggle() error {
	if v, ok := n.Attrs().StyleValue("display"); ok && v == "none" {
		return n.Show("")
	}
	return n.Hide()
}
