package ivysilani

import (
	"encoding/xml"
	"strings"
)

// node is a schema-less XML element. The API adds and drops tags freely, so
// responses are decoded into a tree and mapped by tag name.
type node struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
	Nodes   []node `xml:",any"`
}

func parseXML(data []byte) (*node, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

func (n *node) name() string {
	return n.XMLName.Local
}

func (n *node) text() string {
	return strings.TrimSpace(n.Text)
}

// isErrors reports whether n is an <errors> envelope.
func (n *node) isErrors() bool {
	return n.name() == "errors"
}

func (n *node) apiError() *APIError {
	messages := make([]string, 0, len(n.Nodes))
	for i := range n.Nodes {
		messages = append(messages, n.Nodes[i].text())
	}
	return &APIError{Messages: messages}
}

// child returns the first direct child with the given tag.
func (n *node) child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].name() == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// firstDescendant follows the first child depth times.
func (n *node) firstDescendant(depth int) *node {
	cur := n
	for range depth {
		if len(cur.Nodes) == 0 {
			return nil
		}
		cur = &cur.Nodes[0]
	}
	return cur
}

// fields copies every direct child tag and its text.
func (n *node) fields() Fields {
	var f Fields
	for i := range n.Nodes {
		f.Set(n.Nodes[i].name(), n.Nodes[i].text())
	}
	return f
}
