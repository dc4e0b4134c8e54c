package state

// PlayerState tracks everything the player has earned or learned.
// Inventory and DiscoveredNodes have set semantics and only grow;
// KnowledgeSummary is derived from DiscoveredNodes, never mutated on its own.
type PlayerState struct {
	Inventory         []string       `json:"inventory"`
	FamiliarityLevels map[string]int `json:"familiarity"`
	DiscoveredNodes   []string       `json:"discovered_nodes"`
	KnowledgeSummary  string         `json:"knowledge_summary"`
}

// HasItem reports whether the item is in the inventory.
func (ps *PlayerState) HasItem(item string) bool {
	for _, it := range ps.Inventory {
		if it == item {
			return true
		}
	}
	return false
}

// AddItem adds an item to the inventory. Re-adding is a no-op, so item
// confirmation is idempotent. Returns true if the item was new.
func (ps *PlayerState) AddItem(item string) bool {
	if ps.HasItem(item) {
		return false
	}
	ps.Inventory = append(ps.Inventory, item)
	return true
}

// Discovered reports whether a node id has been discovered.
func (ps *PlayerState) Discovered(id string) bool {
	for _, d := range ps.DiscoveredNodes {
		if d == id {
			return true
		}
	}
	return false
}

// DiscoverNode appends a node id to the discovered set. The set only grows;
// re-discovering is a no-op. Returns true if the id was new. The caller is
// responsible for recomputing the knowledge summary afterward.
func (ps *PlayerState) DiscoverNode(id string) bool {
	if ps.Discovered(id) {
		return false
	}
	ps.DiscoveredNodes = append(ps.DiscoveredNodes, id)
	return true
}

// DiscoveredSet returns the discovered node ids as a lookup map.
func (ps *PlayerState) DiscoveredSet() map[string]bool {
	set := make(map[string]bool, len(ps.DiscoveredNodes))
	for _, id := range ps.DiscoveredNodes {
		set[id] = true
	}
	return set
}

// Familiarity returns the player's familiarity with a villager, 0-5.
func (ps *PlayerState) Familiarity(villager string) int {
	return ps.FamiliarityLevels[villager]
}

// SetFamiliarity overwrites a villager's familiarity, clamped to [0,5].
// Familiarity is not monotonic: the oracle may lower it.
func (ps *PlayerState) SetFamiliarity(villager string, level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxFamiliarity {
		level = MaxFamiliarity
	}
	ps.FamiliarityLevels[villager] = level
}
