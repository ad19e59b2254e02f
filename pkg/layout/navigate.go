package layout

import (
	"slices"
	"strconv"

	"github.com/kinview/kinview/pkg/errors"
)

// Direction is a keyboard navigation move.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// ParseDirection accepts up, down, left, right (or w, s, a, d) and the
// digits 1 to 9, which select a spouse within a group.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "w", "k":
		return DirUp, nil
	case "down", "s", "j":
		return DirDown, nil
	case "left", "a", "h":
		return DirLeft, nil
	case "right", "d", "l":
		return DirRight, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 9 {
		return Direction(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown direction %q", s)
}

// Navigate returns the person a move from current lands on, or false when
// there is nowhere to go. Up and down follow the first displayed parent or
// child, left and right step between layout siblings and a digit n selects
// the nth spouse in current's group.
func Navigate(l *Layout, current string, dir Direction) (string, bool) {
	me := l.Member(current)
	if me == nil {
		return "", false
	}
	item := l.LookupNodeByID(current)

	switch dir {
	case DirUp:
		asc := me.Ascendants()
		if len(asc) == 0 {
			asc = item.Ascendants()
		}
		if len(asc) == 0 {
			return "", false
		}
		return parentMember(asc[0], me), true
	case DirDown:
		desc := me.Descendants()
		if len(desc) == 0 {
			desc = item.Descendants()
		}
		if len(desc) == 0 {
			return "", false
		}
		return desc[0].ID(), true
	case DirLeft, DirRight:
		parent := item.base().parent
		if parent == nil {
			return "", false
		}
		sibs := parent.base().kids
		i := slices.Index(sibs, item)
		if dir == DirLeft {
			i--
		} else {
			i++
		}
		if i < 0 || i >= len(sibs) {
			return "", false
		}
		return sibs[i].ID(), true
	}

	n, err := strconv.Atoi(string(dir))
	if err != nil || me.group == nil || n < 1 || n >= len(me.group.members) {
		return "", false
	}
	return me.group.members[n].ID(), true
}

// parentMember picks the member of parent who is actually a parent of child.
func parentMember(parent Item, child *PersonNode) string {
	g, ok := parent.(*GroupNode)
	if !ok {
		return parent.ID()
	}
	for _, m := range g.members {
		if slices.Contains(child.person.Parents, m.ID()) {
			return m.ID()
		}
	}
	return g.ID()
}
