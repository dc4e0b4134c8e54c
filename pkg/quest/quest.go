package quest

import (
	"fmt"
	"strings"
)

// NodeType is the variant of a quest node.
type NodeType string

const (
	NodeInformation    NodeType = "Information"
	NodeTalkToVillager NodeType = "TalkToVillager"
	NodeFetchItem      NodeType = "FetchItem"
)

// Node is an atomic unit of revealable information or task.
// Preconditions reference other node ids in the same graph.
type Node struct {
	ID                  string   `json:"node_id"`
	Villager            string   `json:"villager_name"`
	Content             string   `json:"content"`
	Type                NodeType `json:"type"`
	Priority            int      `json:"priority"`
	KeyClue             bool     `json:"key_clue"`
	Preconditions       []string `json:"preconditions,omitempty"`
	RequiredItem        string   `json:"required_item,omitempty"`
	RequiredFamiliarity *int     `json:"required_familiarity,omitempty"`
	RewardItem          string   `json:"reward_item,omitempty"`
	ItemLocation        string   `json:"item_location,omitempty"`
}

// Graph is the full quest network for one session. It is generated once at
// session start and immutable afterward. The order of Nodes is the generation
// order: it breaks priority ties in the resolver and fixes the concatenation
// order of the knowledge summary.
type Graph struct {
	Nodes []Node `json:"nodes"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// KeyClueIDs returns the ids of all key-clue nodes in generation order.
func (g *Graph) KeyClueIDs() []string {
	ids := make([]string, 0)
	for i := range g.Nodes {
		if g.Nodes[i].KeyClue {
			ids = append(ids, g.Nodes[i].ID)
		}
	}
	return ids
}

// Summarize concatenates the content of the given discovered node ids in
// graph order. The result is the full knowledge summary; it is recomputed
// from scratch so it can never drift from the discovered set.
func (g *Graph) Summarize(discovered map[string]bool) string {
	if len(discovered) == 0 {
		return ""
	}
	parts := make([]string, 0, len(discovered))
	for i := range g.Nodes {
		if discovered[g.Nodes[i].ID] {
			parts = append(parts, g.Nodes[i].Content)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Key points discovered so far: " + strings.Join(parts, "; ")
}

// Validate checks the structural invariants of a generated graph.
// A graph that fails validation must never be attached to a live session.
func (g *Graph) Validate(keyClueTarget int) error {
	if len(g.Nodes) == 0 {
		return fmt.Errorf("graph has no nodes")
	}

	ids := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.ID == "" {
			return fmt.Errorf("node at index %d has empty id", i)
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}

	starts := 0
	keyClues := 0
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if len(n.Preconditions) == 0 {
			starts++
		}
		if n.KeyClue {
			keyClues++
		}
		for _, p := range n.Preconditions {
			if !ids[p] {
				return fmt.Errorf("node %q references unknown precondition %q", n.ID, p)
			}
		}
		if n.RequiredFamiliarity != nil {
			if f := *n.RequiredFamiliarity; f < 1 || f > 5 {
				return fmt.Errorf("node %q has required_familiarity %d outside [1,5]", n.ID, f)
			}
		}
	}

	if starts == 0 {
		return fmt.Errorf("graph has no starting node (every node has preconditions)")
	}
	if keyClues != keyClueTarget {
		return fmt.Errorf("graph has %d key clues, difficulty requires %d", keyClues, keyClueTarget)
	}

	if cycle := g.findCycle(); cycle != "" {
		return fmt.Errorf("precondition cycle through node %q", cycle)
	}
	return nil
}

// findCycle runs a three-color DFS over the precondition edges and returns
// the id of a node on a cycle, or "".
func (g *Graph) findCycle() string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.Nodes))
	pre := make(map[string][]string, len(g.Nodes))
	for i := range g.Nodes {
		pre[g.Nodes[i].ID] = g.Nodes[i].Preconditions
	}

	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		for _, p := range pre[id] {
			switch color[p] {
			case gray:
				return p
			case white:
				if c := visit(p); c != "" {
					return c
				}
			}
		}
		color[id] = black
		return ""
	}

	for i := range g.Nodes {
		if color[g.Nodes[i].ID] == white {
			if c := visit(g.Nodes[i].ID); c != "" {
				return c
			}
		}
	}
	return ""
}
