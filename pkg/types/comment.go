package types

// NoComment is the comment id used when no existing comment should be updated
const NoComment int64 = -1

// CommentDraft is a rendered comment body and the parts it was built from
type CommentDraft struct {
	Title string
	Links []string
	Body  string
}

// CommentTarget identifies where a comment body goes
type CommentTarget struct {
	Number    int
	CommentID int64
}

// HasComment reports whether the target points at an existing comment
func (t CommentTarget) HasComment() bool {
	return t.CommentID > 0
}

// Comment is an issue or pull request comment
type Comment struct {
	ID   int64
	Body string
}
