package ledgerboard

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"
)

// Graph is the directed multigraph of one transaction's postings: one node
// per distinct account address, one edge per posting. Parallel postings
// between the same pair of accounts stay distinct edges.
//
// The graph is rebuilt per render and carries no layout: DOT export leaves
// placement to the rendering side.
type Graph struct {
	g     *multi.DirectedGraph
	nodes map[string]accountNode
	edges []GraphEdge
}

// GraphEdge is one posting in drawing order.
type GraphEdge struct {
	Source      string
	Destination string
	Label       string
}

type accountNode struct {
	id      int64
	address string
}

func (n accountNode) ID() int64     { return n.id }
func (n accountNode) DOTID() string { return n.address }

type postingLine struct {
	graph.Line
	label string
}

func (l postingLine) ReversedLine() graph.Line {
	return postingLine{Line: l.Line.ReversedLine(), label: l.label}
}

func (l postingLine) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("%q", l.label)}}
}

// TransactionGraph builds the posting graph of tx. A transaction with no
// postings yields an empty graph.
func TransactionGraph(tx *Transaction) *Graph {
	g := &Graph{
		g:     multi.NewDirectedGraph(),
		nodes: make(map[string]accountNode),
	}
	for _, p := range tx.Postings {
		label := fmt.Sprintf("%s %s", p.Asset, p.Amount)
		from := g.node(p.Source)
		to := g.node(p.Destination)
		// SetLine panics on self loops; a posting from an address to
		// itself still shows up in the edge list.
		if p.Source != p.Destination {
			g.g.SetLine(postingLine{Line: g.g.NewLine(from, to), label: label})
		}
		g.edges = append(g.edges, GraphEdge{Source: p.Source, Destination: p.Destination, Label: label})
	}
	return g
}

func (g *Graph) node(address string) accountNode {
	if n, ok := g.nodes[address]; ok {
		return n
	}
	n := accountNode{id: int64(len(g.nodes)), address: address}
	g.nodes[address] = n
	g.g.AddNode(n)
	return n
}

// Nodes returns the account addresses of the graph, sorted.
func (g *Graph) Nodes() []string {
	addrs := make([]string, 0, len(g.nodes))
	for a := range g.nodes {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	return addrs
}

// Edges returns the edges in posting order.
func (g *Graph) Edges() []GraphEdge { return g.edges }

// DOT renders the graph in Graphviz DOT form.
func (g *Graph) DOT() (string, error) {
	b, err := dot.Marshal(g.g, "postings", "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
