package inventory

import (
	"github.com/google/uuid"
)

// LineageIndex answers provenance questions over a set of split records
// loaded into memory. Parent links form a forest: every LOT has at most one
// originating split (where it is output or remnant) and at most one split
// where it is the source, so the index is a pair of adjacency maps over a
// record arena. Traversals are cycle-guarded so a corrupt parent chain
// terminates instead of looping.
type LineageIndex struct {
	splits   []LotSplit
	bySource map[uuid.UUID]int
	byChild  map[uuid.UUID]int
}

// NewLineageIndex builds an index over the given split records
func NewLineageIndex(splits []LotSplit) *LineageIndex {
	idx := &LineageIndex{
		splits:   splits,
		bySource: make(map[uuid.UUID]int, len(splits)),
		byChild:  make(map[uuid.UUID]int, len(splits)*2),
	}
	for i := range splits {
		idx.bySource[splits[i].SourceLotID] = i
		idx.byChild[splits[i].OutputLotID] = i
		idx.byChild[splits[i].RemnantLotID] = i
	}
	return idx
}

// SplitOf returns the split event where the LOT was the source, if any.
// A LOT can be the source of at most one split: once split it is retired.
func (x *LineageIndex) SplitOf(lotID uuid.UUID) (*LotSplit, bool) {
	i, ok := x.bySource[lotID]
	if !ok {
		return nil, false
	}
	return &x.splits[i], true
}

// OriginOf returns the split event that created the LOT as output or
// remnant, if any.
func (x *LineageIndex) OriginOf(lotID uuid.UUID) (*LotSplit, bool) {
	i, ok := x.byChild[lotID]
	if !ok {
		return nil, false
	}
	return &x.splits[i], true
}

// AncestorChain walks the parent chain from the LOT up to its root,
// returning the splits passed through, nearest parent first. The chain may
// be arbitrarily deep since remnants can be split again.
func (x *LineageIndex) AncestorChain(lotID uuid.UUID) []LotSplit {
	chain := make([]LotSplit, 0)
	seen := map[uuid.UUID]bool{lotID: true}
	current := lotID
	for {
		split, ok := x.OriginOf(current)
		if !ok {
			break
		}
		chain = append(chain, *split)
		parent := split.SourceLotID
		if seen[parent] {
			break
		}
		seen[parent] = true
		current = parent
	}
	return chain
}

// RootOf returns the purchase/production ancestor at the top of the LOT's
// parent chain. A LOT with no recorded origin is its own root.
func (x *LineageIndex) RootOf(lotID uuid.UUID) uuid.UUID {
	chain := x.AncestorChain(lotID)
	if len(chain) == 0 {
		return lotID
	}
	return chain[len(chain)-1].SourceLotID
}

// Descendants returns the splits in the subtree below the LOT in
// breadth-first order: the splits of the LOT itself, then of its children,
// and so on.
func (x *LineageIndex) Descendants(lotID uuid.UUID) []LotSplit {
	result := make([]LotSplit, 0)
	seen := map[uuid.UUID]bool{lotID: true}
	frontier := []uuid.UUID{lotID}
	for len(frontier) > 0 {
		next := make([]uuid.UUID, 0)
		for _, id := range frontier {
			split, ok := x.SplitOf(id)
			if !ok {
				continue
			}
			result = append(result, *split)
			for _, child := range []uuid.UUID{split.OutputLotID, split.RemnantLotID} {
				if !seen[child] {
					seen[child] = true
					next = append(next, child)
				}
			}
		}
		frontier = next
	}
	return result
}

// LotIDs returns every LOT appearing in the indexed splits
func (x *LineageIndex) LotIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(x.splits)*3)
	ids := make([]uuid.UUID, 0, len(x.splits)*3)
	for i := range x.splits {
		for _, id := range []uuid.UUID{x.splits[i].SourceLotID, x.splits[i].OutputLotID, x.splits[i].RemnantLotID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
