// Package track defines the music library's track type and the mp3
// import pipeline that produces tracks from files on disk.
package track

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Track is one item of the music library. Data carries the full file
// contents as a self-contained data URL so a track survives restarts
// without re-reading the original file.
type Track struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	FileName string    `json:"fileName"`
	Data     string    `json:"url"`
	Duration float64   `json:"duration"`
	Created  time.Time `json:"createdAt"`
}

// New builds a track from raw file bytes. The ID is assigned here and
// never reused. Duration stays 0 until the output device reports it.
func New(name, fileName string, data []byte) *Track {
	return &Track{
		ID:       uuid.NewString(),
		Name:     name,
		FileName: fileName,
		Data:     dataURL(data),
		Created:  time.Now(),
	}
}

const dataURLPrefix = "data:audio/mpeg;base64,"

func dataURL(data []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data)
}

// Bytes decodes the data URL back into the original file contents.
func (t *Track) Bytes() ([]byte, error) {
	enc := t.Data
	if len(enc) >= len(dataURLPrefix) && enc[:len(dataURLPrefix)] == dataURLPrefix {
		enc = enc[len(dataURLPrefix):]
	}
	return base64.StdEncoding.DecodeString(enc)
}
