package ifilestore

import "io"

// IFileStore abstracts where upload binaries land. Writes go to a staging
// area first and are promoted only after the file has been validated.
type IFileStore interface {
	// SaveTemp streams r into the staging area under name and returns the
	// absolute path of the staged file.
	SaveTemp(name string, r io.Reader) (string, error)

	// Promote moves a staged or derived file into permanent storage under
	// finalName and returns its absolute path.
	Promote(tempPath, finalName string) (string, error)

	// Remove deletes a file, ignoring already-gone paths.
	Remove(path string) error
}
