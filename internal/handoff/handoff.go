// Package handoff carries a rendered comment between two CI jobs: one that can
// see the pull request event and one that has permission to write to it.
package handoff

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/clintrovert/nbactions/pkg/types"
)

// Version is the record version written by this build
const Version = 1

var (
	// ErrUnsupportedVersion is returned for records written by another version
	ErrUnsupportedVersion = errors.New("unsupported handoff record version")
	// ErrMemberNotFound is returned when the archive lacks the record file
	ErrMemberNotFound = errors.New("handoff record not found in archive")
	// ErrEmpty is returned when the record file has no content
	ErrEmpty = errors.New("handoff record is empty")
)

// Record is the comment a later job should post
type Record struct {
	Version   int    `json:"version"`
	PR        int    `json:"pr"`
	CommentID int64  `json:"comment_id"`
	Body      string `json:"body"`
}

// NewRecord builds a record for target with body
func NewRecord(target types.CommentTarget, body string) Record {
	return Record{
		Version:   Version,
		PR:        target.Number,
		CommentID: target.CommentID,
		Body:      body,
	}
}

// Target returns the comment target the record points at
func (r Record) Target() types.CommentTarget {
	return types.CommentTarget{Number: r.PR, CommentID: r.CommentID}
}

// Encode writes rec as a single line of JSON
func Encode(w io.Writer, rec Record) error {
	if rec.Version == 0 {
		rec.Version = Version
	}
	// json.Encoder escapes newlines inside strings and terminates with one
	if err := json.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("failed to encode handoff record: %w", err)
	}
	return nil
}

// Write stores rec in the file at name, replacing it
func Write(name string, rec Record) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create handoff file: %w", err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a record from the first line of r
func Decode(r io.Reader) (Record, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Record{}, fmt.Errorf("failed to read handoff record: %w", err)
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Record{}, ErrEmpty
	}

	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode handoff record: %w", err)
	}
	if rec.Version != Version {
		return Record{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, rec.Version)
	}

	return rec, nil
}

// Read loads the record stored in the file at name
func Read(name string) (Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return Record{}, fmt.Errorf("failed to open handoff file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// FromZip decodes the record stored as member inside a zip archive. member
// is matched against entry names and, failing that, their base names.
func FromZip(data []byte, member string) (Record, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Record{}, fmt.Errorf("failed to open artifact archive: %w", err)
	}

	var found *zip.File
	for _, f := range zr.File {
		if f.Name == member {
			found = f
			break
		}
		if found == nil && path.Base(f.Name) == member {
			found = f
		}
	}
	if found == nil {
		return Record{}, fmt.Errorf("%w: %s", ErrMemberNotFound, member)
	}

	rc, err := found.Open()
	if err != nil {
		return Record{}, fmt.Errorf("failed to open %s: %w", found.Name, err)
	}
	defer rc.Close()

	return Decode(rc)
}
