package kml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// node is one element of the decoded document tree.
//
// KML nests containers arbitrarily (Document > Folder > Folder > Placemark), so the
// document is decoded into a generic tree first and interpreted by explicit traversal
// afterwards. Namespaces are ignored; matching is on local element names.
type node struct {
	name     string
	text     string
	children []*node
}

// buildTree decodes an XML document into a node tree.
//
// Character data is attached to the element that directly contains it. Attributes,
// comments, and processing instructions are dropped.
func buildTree(data []byte) (*node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	root := &node{}
	stack := []*node{root}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode map description: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			child := &node{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, child)
			stack = append(stack, child)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			// Token buffers are reused by the decoder; string() copies.
			stack[len(stack)-1].text += string(t)
		}
	}

	if len(root.children) == 0 {
		return nil, fmt.Errorf("decode map description: document has no elements")
	}
	return root, nil
}

// childText returns the trimmed text of the first direct child with the given name.
func (n *node) childText(name string) string {
	for _, child := range n.children {
		if child.name == name {
			return strings.TrimSpace(child.text)
		}
	}
	return ""
}

// descendants collects every node with the given name anywhere below n, in document
// order, parents before their nested matches.
func (n *node) descendants(name string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, child := range cur.children {
			if child.name == name {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// firstDescendant returns the first node with the given name in document order, or nil.
func (n *node) firstDescendant(name string) *node {
	for _, child := range n.children {
		if child.name == name {
			return child
		}
		if found := child.firstDescendant(name); found != nil {
			return found
		}
	}
	return nil
}
