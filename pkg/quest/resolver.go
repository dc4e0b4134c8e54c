package quest

import "sort"

// PlayerView is the slice of player state the resolver needs.
// *state.PlayerState satisfies it.
type PlayerView interface {
	// Discovered reports whether the node id is already discovered.
	Discovered(id string) bool
	// HasItem reports whether the item is in the player's inventory.
	HasItem(item string) bool
	// Familiarity returns the player's familiarity with a villager, 0-5.
	Familiarity(villager string) int
}

// Resolve selects the single node a villager may offer this turn.
//
// Candidates are the villager's undiscovered nodes, ordered by priority
// descending with generation order breaking ties. The ordering decides which
// clue is offered, so the sort must be stable. The first candidate whose
// preconditions are all discovered and whose required item (if any) is held
// is the result: (node, false) if its familiarity gate is met or absent,
// (node, true) if the node is gated purely by trust. If no candidate passes
// preconditions and items, the result is (nil, false).
//
// Resolve is pure. Callers must re-run it every turn; any reveal can change
// the outcome.
func Resolve(g *Graph, villager string, player PlayerView) (*Node, bool) {
	candidates := make([]*Node, 0)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Villager != villager || player.Discovered(n.ID) {
			continue
		}
		candidates = append(candidates, n)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	for _, n := range candidates {
		if !preconditionsMet(n, player) {
			continue
		}
		if n.RequiredItem != "" && !player.HasItem(n.RequiredItem) {
			continue
		}
		if n.RequiredFamiliarity != nil && player.Familiarity(villager) < *n.RequiredFamiliarity {
			return n, true
		}
		return n, false
	}
	return nil, false
}

func preconditionsMet(n *Node, player PlayerView) bool {
	for _, p := range n.Preconditions {
		if !player.Discovered(p) {
			return false
		}
	}
	return true
}
