package types

// RepositoryInfo contains GitHub repository information
type RepositoryInfo struct {
	Owner string
	Name  string
}

// FullName returns the "owner/name" slug
func (r RepositoryInfo) FullName() string {
	return r.Owner + "/" + r.Name
}

// PRHead describes the head side of a pull request
type PRHead struct {
	Branch   string
	FullName string
}
