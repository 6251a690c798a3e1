package comment

// applyReaction resolves a reader's new reaction against their previous one.
// prev is nil when the reader had not reacted. Repeating the same reaction
// withdraws it; choosing the other one switches. The returned delta is
// added to the comment's counters.
func applyReaction(prev *bool, like bool) (next *bool, delta Counts) {
	switch {
	case prev == nil:
		next = &like
		delta = countFor(like, 1)
	case *prev == like:
		next = nil
		delta = countFor(like, -1)
	default:
		next = &like
		delta = countFor(like, 1)
		undo := countFor(*prev, -1)
		delta.Likes += undo.Likes
		delta.Dislikes += undo.Dislikes
	}
	return next, delta
}

func countFor(like bool, n int) Counts {
	if like {
		return Counts{Likes: n}
	}
	return Counts{Dislikes: n}
}
