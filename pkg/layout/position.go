package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/kinview/kinview/pkg/errors"
)

// Position measures every node with cfg and assigns coordinates. Calling it
// again with the same config is a no-op; a different config fails with
// STALE_LAYOUT until FlushDimensionCache is called.
func (l *Layout) Position(cfg RenderConfig) error {
	cfg = cfg.withDefaults()
	switch l.state {
	case StateUnbuilt:
		return errors.New(errors.ErrCodeInternal, "layout has not been built")
	case StatePositioned:
		if cfg == l.cfg {
			return nil
		}
		return errors.New(errors.ErrCodeStaleLayout,
			"layout was positioned at font size %g; flush the dimension cache before positioning at %g",
			l.cfg.BaseSize, cfg.BaseSize)
	}

	l.cfg = cfg
	all := l.AllNodes()
	for _, n := range all {
		n.measure(l)
	}

	l.assignRows(all)
	l.initialX(l.root)

	l.extents = Extents{}
	first := true
	l.finalX(l.root, 0, func(n Item) {
		x, y, x2, y2 := n.X(), n.Y(), n.X()+n.Width(), n.Y()+n.Height()
		if first {
			l.extents = Extents{MinX: x, MinY: y, MaxX: x2, MaxY: y2}
			first = false
			return
		}
		l.extents = l.extents.extend(x, y, x2, y2)
	})

	if l.style == StylePedigree {
		l.adjustPedigree(all)
		l.extents = extentsOf(all)
	}

	l.state = StatePositioned
	l.logger.Debug("layout positioned",
		"focus", l.focus, "nodes", len(all),
		"width", l.extents.Width(), "height", l.extents.Height())
	return nil
}

// assignRows gives every generation one Y. Generation 0 is at 0; rows below
// follow the tallest box of the row above plus VerticalMargin, and rows
// above are stacked the same way upward.
func (l *Layout) assignRows(all []Item) {
	maxH := make(map[int]float64)
	minGen, maxGen := 0, 0
	for _, n := range all {
		g := n.Generation()
		maxH[g] = max(maxH[g], n.Height())
		minGen, maxGen = min(minGen, g), max(maxGen, g)
	}

	ys := map[int]float64{0: 0}
	for g := 1; g <= maxGen; g++ {
		ys[g] = ys[g-1] + maxH[g-1] + VerticalMargin
	}
	for g := -1; g >= minGen; g-- {
		ys[g] = ys[g+1] - maxH[g] - VerticalMargin
	}

	for _, n := range all {
		n.SetPos(n.X(), ys[n.Generation()])
	}
	if r, ok := l.root.(*RootNode); ok {
		r.SetPos(0, ys[minGen]-VerticalMargin)
	}
}

func isLeftmost(n Item) bool {
	p := n.base().parent
	return p == nil || p.base().kids[0] == n
}

func previousSibling(n Item) Item {
	kids := n.base().parent.base().kids
	i := slices.Index(kids, n)
	return kids[i-1]
}

func setX(n Item, x float64) { n.SetPos(x, n.Y()) }

// initialX places n relative to its siblings after placing its subtree.
func (l *Layout) initialX(n Item) {
	b := n.base()
	for _, k := range b.kids {
		l.initialX(k)
	}

	if len(b.kids) == 0 {
		if isLeftmost(n) {
			setX(n, 0)
		} else {
			prev := previousSibling(n)
			setX(n, prev.X()+prev.Width()+HorizontalMargin)
		}
	} else {
		first, last := b.kids[0], b.kids[len(b.kids)-1]
		mid := (first.X() + last.X() + last.Width()) / 2
		if isLeftmost(n) {
			setX(n, mid-n.Width()/2)
		} else {
			prev := previousSibling(n)
			setX(n, prev.X()+prev.Width()+HorizontalMargin)
			b.mod = n.X() - mid + n.Width()/2
		}
	}

	if !isLeftmost(n) {
		l.checkForConflicts(n)
	}
}

// checkForConflicts pushes n right until its left contour keeps TreeDistance
// from the right contour of every earlier sibling subtree.
func (l *Layout) checkForConflicts(n Item) {
	b := n.base()
	if b.parent == nil {
		return
	}
	left := contour(n, false)
	for _, sib := range b.parent.base().kids {
		if sib == n {
			break
		}
		right := contour(sib, true)
		shift := 0.0
		for level, lx := range left {
			rx, ok := right[level]
			if !ok {
				continue
			}
			if dist := lx - rx; dist+shift < TreeDistance {
				shift = TreeDistance - dist
			}
		}
		if shift > 0 {
			setX(n, n.X()+shift)
			b.mod += shift
			left = contour(n, false)
		}
	}
}

// contour returns, per generation, the leftmost box edge of n's subtree or
// (right) the rightmost, with pending mods applied.
func contour(n Item, right bool) map[int]float64 {
	values := make(map[int]float64)
	var walk func(n Item, modSum float64)
	walk = func(n Item, modSum float64) {
		b := n.base()
		v := n.X() + modSum
		if right {
			v += n.Width()
		}
		if cur, ok := values[b.gen]; !ok || (right && v > cur) || (!right && v < cur) {
			values[b.gen] = v
		}
		modSum += b.mod
		for _, k := range b.kids {
			walk(k, modSum)
		}
	}
	walk(n, 0)
	return values
}

// finalX applies the accumulated mods of all ancestors to each node.
func (l *Layout) finalX(n Item, modSum float64, visit func(Item)) {
	b := n.base()
	setX(n, n.X()+modSum)
	modSum += b.mod
	for _, k := range b.kids {
		l.finalX(k, modSum, visit)
	}
	if n.Kind() != KindRoot {
		visit(n)
	}
}

// adjustPedigree centers each person over their displayed parents, oldest
// generation first, without moving closer than TreeDistance to a row
// neighbour.
func (l *Layout) adjustPedigree(all []Item) {
	rows := make(map[int][]Item)
	for _, n := range all {
		rows[n.Generation()] = append(rows[n.Generation()], n)
	}
	gens := make([]int, 0, len(rows))
	for g := range rows {
		gens = append(gens, g)
	}
	slices.Sort(gens)

	for _, g := range gens {
		row := rows[g]
		slices.SortStableFunc(row, func(a, b Item) int { return cmp.Compare(a.X(), b.X()) })
		for i, n := range row {
			asc := n.Ascendants()
			if len(asc) < 2 {
				continue
			}
			first, last := asc[0], asc[len(asc)-1]
			mid := (first.X() + first.Width()/2 + last.X() + last.Width()/2) / 2
			lo, hi := math.Inf(-1), math.Inf(1)
			if i > 0 {
				lo = row[i-1].X() + row[i-1].Width() + TreeDistance
			}
			if i < len(row)-1 {
				hi = row[i+1].X() - n.Width() - TreeDistance
			}
			if lo > hi {
				continue
			}
			setX(n, min(max(mid-n.Width()/2, lo), hi))
		}
	}
}

func extentsOf(all []Item) Extents {
	var e Extents
	for i, n := range all {
		x, y, x2, y2 := n.X(), n.Y(), n.X()+n.Width(), n.Y()+n.Height()
		if i == 0 {
			e = Extents{MinX: x, MinY: y, MaxX: x2, MaxY: y2}
			continue
		}
		e = e.extend(x, y, x2, y2)
	}
	return e
}
