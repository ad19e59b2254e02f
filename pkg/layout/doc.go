// Package layout places people from a kinship graph on a 2D plane.
//
// # Overview
//
// A [Layout] is built from a [kinship.Graph], a focus person and a [Style].
// Building turns the cyclic kinship graph (remarriage, shared parents) into a
// tree of display nodes. Each node is one of three kinds behind the [Item]
// interface:
//
//   - [*PersonNode]: one person in one box
//   - [*GroupNode]: a person and their spouses, side by side in one row
//   - [*RootNode]: an invisible parent joining the top-level chains of a
//     connection layout
//
// Every node has exactly one layout parent. Other display edges (a second
// parent shown in a connection chain, for example) are drawn but do not drive
// positioning.
//
// # Styles
//
//   - [StyleStandard]: rooted at the focus person's grandparent (or the
//     nearest ancestor found), descending a bounded number of generations
//   - [StyleSubtree]: the descendants of exactly the focus person, bounded
//   - [StylePedigree]: ancestors only, growing upward, unbounded unless
//     [WithGenerations] is given
//   - [StyleConnection]: the shortest relationship chain between the focus
//     and [WithTarget], with consecutive spouse hops merged into one group
//
// # Positioning
//
// [Layout.Position] measures every box with the [RenderConfig] fonts and then
// runs a Reingold-Tilford variant in three passes:
//
//  1. Rows: every generation gets one Y, stacked outward from generation 0
//     with the tallest box of each row plus [VerticalMargin] between rows.
//  2. Initial X, post-order: leaves are packed left to right
//     [HorizontalMargin] apart; parents are centered over their children.
//     A node that cannot be centered records the difference in its mod, and
//     subtrees are pushed right until their contours keep [TreeDistance] from
//     every earlier sibling subtree.
//  3. Final X, pre-order: accumulated mods are applied to descendants and the
//     tree extents are collected.
//
// Pedigree layouts grow upward, so a final adjustment recenters each person
// over their displayed parents.
//
// # State
//
// A Layout moves from Built (after [New]) to Positioned (after Position).
// Positioning again with the same config does nothing; positioning with a
// different config fails with STALE_LAYOUT until [Layout.FlushDimensionCache]
// returns the layout to Built:
//
//	l, err := layout.New(g, "I12", layout.WithStyle(layout.StyleStandard))
//	if err != nil {
//	    return err
//	}
//	cfg := layout.DefaultConfig()
//	if err := l.Position(cfg); err != nil {
//	    return err
//	}
//	// zooming in
//	l.FlushDimensionCache()
//	err = l.Position(cfg.ZoomIn())
//
// A Layout is not safe for concurrent use. The Graph it reads is never
// modified, so several layouts may share one Graph.
package layout
