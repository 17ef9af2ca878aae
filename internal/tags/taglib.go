package tags

import (
	"strings"

	"go.senan.xyz/taglib"
)

// TaglibReader reads metadata through the taglib bindings. It satisfies the
// Reader contract of degrading to a zero Reading on any read failure.
type TaglibReader struct{}

// NewTaglibReader returns the production tag reader.
func NewTaglibReader() TaglibReader {
	return TaglibReader{}
}

func (TaglibReader) Read(path string) Reading {
	var reading Reading

	fields, err := taglib.ReadTags(path)
	if err == nil {
		reading.Artist = firstValue(fields, taglib.Artist)
		reading.Title = firstValue(fields, taglib.Title)
		reading.Album = firstValue(fields, taglib.Album)
	}

	props, err := taglib.ReadProperties(path)
	if err == nil && props.Length > 0 {
		reading.DurationMS = props.Length.Milliseconds()
	}

	return reading
}

func firstValue(fields map[string][]string, key string) string {
	for _, value := range fields[key] {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
