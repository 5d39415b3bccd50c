package physics

import "blocksmith/internal/types"

// StaticLaws computes the same support and containment tables as RuleLaws
// with plain Go loops. It exists for callers that do not want a Datalog
// evaluation at construction (unit tests, tiny embedded worlds); the two
// implementations must stay in agreement, which laws_test.go checks
// pair-by-pair.
type StaticLaws struct {
	catalog  types.Catalog
	supports pairSet
	contains pairSet
}

// NewStaticLaws builds the tables for every ordered object pair.
func NewStaticLaws(catalog types.Catalog) *StaticLaws {
	l := &StaticLaws{
		catalog:  catalog,
		supports: pairSet{},
		contains: pairSet{},
	}
	for baseID, base := range catalog {
		for topID, top := range catalog {
			if baseID == topID {
				continue
			}
			if canSupport(top, base) {
				l.supports.add(baseID, topID)
			}
			if canContain(top, base) {
				l.contains.add(baseID, topID)
			}
		}
	}
	return l
}

// Legal implements Laws.
func (l *StaticLaws) Legal(rel types.Relation, a, b string) bool {
	return legal(l.catalog, l.supports, l.contains, rel, a, b)
}

// canSupport reports whether top may rest directly on base (base not a box).
func canSupport(top, base types.Object) bool {
	switch base.Form {
	case types.FormBall, types.FormBox, types.FormPyramid:
		return false
	}
	if top.Size == types.SizeLarge && base.Size == types.SizeSmall {
		return false
	}
	switch top.Form {
	case types.FormBall:
		// Balls rest only in boxes or on the floor.
		return false
	case types.FormBox:
		switch base.Form {
		case types.FormPlank, types.FormTable:
			return true
		case types.FormBrick:
			return base.Size == types.SizeLarge
		default:
			return false
		}
	default:
		return true
	}
}

// canContain reports whether content fits inside box.
func canContain(content, box types.Object) bool {
	if box.Form != types.FormBox {
		return false
	}
	if content.Size == types.SizeLarge && box.Size == types.SizeSmall {
		return false
	}
	switch content.Form {
	case types.FormBall, types.FormBrick:
		return true
	case types.FormPyramid, types.FormPlank, types.FormBox:
		return content.Size == types.SizeSmall && box.Size == types.SizeLarge
	default:
		return false
	}
}
