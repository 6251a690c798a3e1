package comment

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// BuildThreads nests comments under their parents. Roots are ordered newest
// first and replies oldest first. Replies whose parent is absent from
// comments are dropped, which also discards any parent cycle since such
// comments can never be reached from a root.
func BuildThreads(comments []Comment) []*Thread {
	nodes := make(map[uuid.UUID]*Thread, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &Thread{Comment: c, Replies: []*Thread{}}
	}

	roots := make([]*Thread, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok && parent != node {
			parent.Replies = append(parent.Replies, node)
		}
	}

	oldestFirst := func(a, b *Thread) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	}
	for _, node := range nodes {
		slices.SortFunc(node.Replies, oldestFirst)
	}
	slices.SortFunc(roots, func(a, b *Thread) int { return oldestFirst(b, a) })
	return roots
}
