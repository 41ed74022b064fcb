package bind

import (
	"strings"
)

// trieNode is one position in the path trie. Literal children are keyed by
// segment text; at most one capture child exists per node. Matching always
// prefers a literal child over the capture child, so /user/create out-ranks
// /user/{id} regardless of declaration order.
type trieNode struct {
	children map[string]*trieNode
	capture  *trieNode
	capName  string
	capType  string
	routes   map[string]*Route // keyed by method
}

func newTrieNode() *trieNode {
	return &trieNode{}
}

// insert walks segments, creating nodes as needed, and attaches rt at the
// final node. Conflicts surface as construction errors.
func (n *trieNode) insert(segs []segment, rt *Route) error {
	node := n
	for _, s := range segs {
		if s.capture {
			if node.capture == nil {
				node.capture = newTrieNode()
				node.capName = s.name
				node.capType = s.typ
			} else if node.capName != s.name || node.capType != s.typ {
				return &AmbiguousRouteError{
					Method: rt.method,
					Path:   rt.Path(),
					Reason: "conflicting capture placeholders {" + node.capName + "} and {" + s.name + "} at the same position",
				}
			}
			node = node.capture
			continue
		}
		if node.children == nil {
			node.children = make(map[string]*trieNode)
		}
		child, ok := node.children[s.literal]
		if !ok {
			child = newTrieNode()
			node.children[s.literal] = child
		}
		node = child
	}

	if node.routes == nil {
		node.routes = make(map[string]*Route)
	}
	if _, exists := node.routes[rt.method]; exists {
		return &AmbiguousRouteError{
			Method: rt.method,
			Path:   rt.Path(),
			Reason: "duplicate (path, method)",
		}
	}
	node.routes[rt.method] = rt
	return nil
}

// match resolves a request path against the trie. Matching is greedy: at
// every position a literal child shadows the capture child. The returned
// texts are the raw capture segments in path order.
func (n *trieNode) match(path string) (node *trieNode, texts []string, ok bool) {
	node = n
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return node, nil, node.routes != nil
	}

	for seg := range strings.SplitSeq(trimmed, "/") {
		if child, found := node.children[seg]; found {
			node = child
			continue
		}
		if node.capture != nil {
			texts = append(texts, seg)
			node = node.capture
			continue
		}
		return nil, nil, false
	}

	if node.routes == nil {
		return nil, nil, false
	}
	return node, texts, true
}
