package tags

// StubReader serves canned readings keyed by path. Paths without an entry
// read as all-absent, mirroring a file with unreadable tags.
type StubReader map[string]Reading

func (s StubReader) Read(path string) Reading {
	return s[path]
}
