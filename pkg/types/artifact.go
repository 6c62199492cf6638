package types

// Artifact is a file bundle uploaded by a workflow run
type Artifact struct {
	ID   int64
	Name string
}
