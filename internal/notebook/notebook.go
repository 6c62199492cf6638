package notebook

import "path/filepath"

// Extension is the file extension of Jupyter notebooks
const Extension = ".ipynb"

// IsNotebook reports whether path names a Jupyter notebook
func IsNotebook(path string) bool {
	return filepath.Ext(path) == Extension
}

// Filter returns the notebooks in paths, keeping their order
func Filter(paths []string) []string {
	var nbs []string
	for _, p := range paths {
		if IsNotebook(p) {
			nbs = append(nbs, p)
		}
	}
	return nbs
}
