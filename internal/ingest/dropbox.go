package ingest

import (
	"os"
	"path/filepath"

	"resonate/internal/canonical"
	"resonate/internal/pipeline"
)

// EnsureDropboxes creates one staging folder per playlist under the
// dropbox root so downloads can be dropped straight into the playlist they
// belong to. Folder names are sanitized; the mapping back to the original
// playlist names is kept for batch attribution.
func (ing *Ingestor) EnsureDropboxes(playlists []string) error {
	if ing.dropboxName == "" || len(playlists) == 0 {
		return nil
	}
	root := filepath.Join(ing.stagingRoot, ing.dropboxName)
	for _, name := range playlists {
		safe := canonical.SafePathComponent(name, "Playlist")
		if err := os.MkdirAll(filepath.Join(root, safe), 0o755); err != nil {
			return pipeline.Wrap(pipeline.ErrEnvironment, "ingestor", "create dropbox folder", name, err)
		}
		ing.playlistNames[safe] = name
	}
	return nil
}
