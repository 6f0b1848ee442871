package markup

// WalkFunc is called for every node visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If fn returns an error the walk stops and returns it.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkBlocks walks only block-level nodes.
func WalkBlocks(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if n.IsBlock() {
			return fn(n)
		}
		return nil
	})
}

// PlainText returns the literal text of the tree with markup removed.
// Blocks are separated by a blank line, line breaks and list items by a newline.
func PlainText(root *Node) string {
	var b []byte
	var write func(n *Node)
	write = func(n *Node) {
		switch n.Kind {
		case KindText, KindCode, KindCodeBlock:
			b = append(b, n.Text...)
		case KindLineBreak:
			b = append(b, '\n')
		}
		for i, child := range n.Children {
			if i > 0 {
				switch n.Kind {
				case KindDocument:
					b = append(b, '\n', '\n')
				case KindList:
					b = append(b, '\n')
				}
			}
			write(child)
		}
	}
	if root != nil {
		write(root)
	}
	return string(b)
}
