package tree

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GraphNode is a vertex of a Graph, labelled with the attributes of a tree node
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Leaf  bool   `json:"leaf"`
}

// GraphEdge links two vertices of a Graph, labelled with the branch taken
type GraphEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Graph is a renderer-neutral description of a tree as vertices and edges
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

/*
Graph returns the graph of the tree, with its vertices and edges listed in
breadth-first order from the root. Every vertex is labelled with the node
feature, threshold, branch, depth, class counts and whether it is a leaf, one
attribute per line.
*/
func (t *Tree) Graph(ctx context.Context) (*Graph, error) {
	g := &Graph{}
	root, err := t.Node(ctx, t.RootID)
	if err != nil {
		return nil, err
	}
	g.Nodes = append(g.Nodes, graphNode(root))
	err = t.BreadthFirst(ctx, func(ctx context.Context, n *Node, children []*Node) error {
		for _, c := range children {
			g.Nodes = append(g.Nodes, graphNode(c))
			var branch string
			if c.Branch != nil {
				branch = *c.Branch
			}
			g.Edges = append(g.Edges, GraphEdge{From: n.ID, To: c.ID, Label: branch})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func graphNode(n *Node) GraphNode {
	return GraphNode{ID: n.ID, Label: NodeLabel(n), Leaf: n.IsLeaf()}
}

// NodeLabel returns the multi-line description of a node used on graphs.
// Absent attributes are shown as None.
func NodeLabel(n *Node) string {
	threshold := "None"
	if n.Threshold != nil {
		threshold = formatFloat(*n.Threshold)
	}
	branch := "None"
	if n.Branch != nil {
		branch = *n.Branch
	}
	counts := make([]string, len(n.Value))
	for i, c := range n.Value {
		counts[i] = strconv.Itoa(c)
	}
	isLeaf := "False"
	if n.IsLeaf() {
		isLeaf = "True"
	}
	return fmt.Sprintf("feature=%s\nthreshold=%s\nbranch=%s\ndepth=%d\nvalue=[%s]=%d\nis_leaf=%s",
		n.Feature, threshold, branch, n.Depth, strings.Join(counts, " "), n.NSamples, isLeaf)
}

// formatFloat prints integral values with a trailing ".0" so thresholds
// always read as real numbers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// WriteDOT takes a graph and an io.Writer and writes the graph onto the
// writer in the graphviz DOT language, with record-shaped vertices.
func WriteDOT(w io.Writer, g *Graph) error {
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("\tgraph [size=\"6,6\"]\n")
	b.WriteString("\tnode [shape=record]\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "\t%s [label=%s]\n", dotQuote(n.ID), dotQuote(n.Label))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "\t%s -> %s [label=%s]\n", dotQuote(e.From), dotQuote(e.To), dotQuote(e.Label))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
