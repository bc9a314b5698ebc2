package ui

// Node describes one element of the UI tree. A node with an empty Tag is a text node.
// OnClick holds the id of a handler registered through Scope.Handle; empty means inert.
type Node struct {
	Tag      string `json:"tag,omitempty"`
	Class    string `json:"class,omitempty"`
	Text     string `json:"text,omitempty"`
	OnClick  string `json:"on_click,omitempty"`
	Children []Node `json:"children,omitempty"`
}

func El(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

func Text(text string) Node {
	return Node{Text: text}
}

func Button(text, class, onClick string) Node {
	return Node{Tag: "button", Class: class, Text: text, OnClick: onClick}
}

func (that Node) IsText() bool {
	return that.Tag == ""
}

func (that Node) IsClickable() bool {
	return that.OnClick != ""
}

// Walk visits the tree depth-first in document order.
func (that Node) Walk(visit func(Node)) {
	visit(that)
	for _, child := range that.Children {
		child.Walk(visit)
	}
}

// Clickables returns every clickable node in document order.
func (that Node) Clickables() []Node {
	var nodes []Node
	that.Walk(func(n Node) {
		if n.IsClickable() {
			nodes = append(nodes, n)
		}
	})

	return nodes
}
