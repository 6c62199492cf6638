package types

// FailureReport is an issue describing a notebook that failed to run
type FailureReport struct {
	Title  string
	Body   string
	Labels []string
}

// IssueInfo contains created issue information
type IssueInfo struct {
	Number int
	URL    string
}
