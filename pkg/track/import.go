package track

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// File is a named blob handed to the importer. How the bytes were
// obtained (file picker, command line, drag and drop) is not the
// importer's concern.
type File struct {
	Name string
	Data []byte
}

// ReadFiles loads the given paths into Files. A path that cannot be
// read aborts the whole import; partially imported batches are worse
// than a repeated command.
func ReadFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// Result reports the outcome of one import batch. Rejected files are
// counted, not listed; the user gets one aggregate number.
type Result struct {
	Accepted []*Track
	Rejected int
}

// Import filters files to mp3s (case-insensitive suffix check) and
// builds a track per accepted file, in input order. The display name
// comes from the ID3v2 title tag when one is present, otherwise from
// the file name stem.
func Import(files []File) Result {
	var res Result
	for _, f := range files {
		if !IsMP3(f.Name) {
			res.Rejected++
			continue
		}
		res.Accepted = append(res.Accepted, New(displayName(f), f.Name, f.Data))
	}
	return res
}

// IsMP3 reports whether name carries an mp3 suffix, ignoring case.
func IsMP3(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".mp3")
}

func displayName(f File) string {
	if tag, err := id3v2.ParseReader(bytes.NewReader(f.Data), id3v2.Options{Parse: true}); err == nil {
		title := strings.TrimSpace(tag.Title())
		if title != "" {
			return title
		}
	}
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}
