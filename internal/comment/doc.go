// Package comment stores reader comments and their like/dislike reactions
// and assembles approved comments into reply threads.
package comment
