package vdom

import "iter"

// Traversals yield the node children of the tree rooted at n; plain values
// are reachable through Contents. Mutating the tree while a traversal is in
// progress has undefined results.

// BFS yields the subtree breadth first. With reverse, siblings are visited
// right to left.
func (n *Node) BFS(reverse bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		queue := []*Node{n}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if !yield(cur) {
				return
			}
			queue = append(queue, ordered(cur.Children(), reverse)...)
		}
	}
}

// DFSPreorder yields each node before its children.
func (n *Node) DFSPreorder(reverse bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preorder(n, reverse, yield)
	}
}

// DFSInorder yields the first child's subtree, then the node, then the
// subtrees of the remaining children.
func (n *Node) DFSInorder(reverse bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		inorder(n, reverse, yield)
	}
}

// DFSPostorder yields each node after its children.
func (n *Node) DFSPostorder(reverse bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		postorder(n, reverse, yield)
	}
}

func preorder(n *Node, reverse bool, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range ordered(n.Children(), reverse) {
		if !preorder(c, reverse, yield) {
			return false
		}
	}
	return true
}

func inorder(n *Node, reverse bool, yield func(*Node) bool) bool {
	children := ordered(n.Children(), reverse)
	if len(children) == 0 {
		return yield(n)
	}
	if !inorder(children[0], reverse, yield) {
		return false
	}
	if !yield(n) {
		return false
	}
	for _, c := range children[1:] {
		if !inorder(c, reverse, yield) {
			return false
		}
	}
	return true
}

func postorder(n *Node, reverse bool, yield func(*Node) bool) bool {
	for _, c := range ordered(n.Children(), reverse) {
		if !postorder(c, reverse, yield) {
			return false
		}
	}
	return yield(n)
}

// ordered returns nodes, reversed in place when reverse is set. Children
// already returns a fresh slice.
func ordered(nodes []*Node, reverse bool) []*Node {
	if reverse {
		for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
			nodes[i], nodes[j] = nodes[j], nodes[i]
		}
	}
	return nodes
}
