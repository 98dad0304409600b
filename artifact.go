package deliverance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joshjung/deliverance-star/internal/fileutil"
)

// artifactMetadata is the JSON shape of the offline metadata artifact.
// The keys are a fixed contract with the presentation layer.
type artifactMetadata struct {
	ContentTree []ContentTreeNode   `json:"contentTree"`
	Footnotes   map[string]Footnote `json:"footnotes"`
}

// artifactPermissions applies to both artifact files.
const artifactPermissions = 0o644

// BuildArtifact runs the pipeline against the source file and writes the two
// offline artifacts: the annotated HTML string at htmlPath and the JSON
// metadata (content tree + footnote table) at metaPath. Each file is written
// atomically and exactly once per run; the artifacts are a read-only
// snapshot for consumers. The rendered document is also returned.
func (r *Renderer) BuildArtifact(ctx context.Context, sourcePath, htmlPath, metaPath string) (*Document, error) {
	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	doc, err := r.Render(ctx, string(source))
	if err != nil {
		return nil, err
	}

	meta, err := json.Marshal(artifactMetadata{
		ContentTree: doc.ContentTree,
		Footnotes:   doc.Footnotes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}

	if err := fileutil.WriteFileAtomic(htmlPath, []byte(doc.HTML), artifactPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}
	if err := fileutil.WriteFileAtomic(metaPath, meta, artifactPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactWrite, err)
	}

	return doc, nil
}

// LoadArtifact reads a previously built artifact pair back into a Document
// without re-running the pipeline.
func LoadArtifact(htmlPath, metaPath string) (*Document, error) {
	htmlContent, err := os.ReadFile(htmlPath) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, htmlPath)
		}
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	metaContent, err := os.ReadFile(metaPath) // #nosec G304 -- user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, metaPath)
		}
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	var meta artifactMetadata
	if err := json.Unmarshal(metaContent, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactDecode, err)
	}

	doc := &Document{
		HTML:        string(htmlContent),
		ContentTree: meta.ContentTree,
		Footnotes:   meta.Footnotes,
	}
	if doc.Footnotes == nil {
		doc.Footnotes = make(map[string]Footnote)
	}
	return doc, nil
}

// Open is the steady-state entry point: it consumes the precomputed artifact
// pair when both files exist, and falls back to rendering the source inline
// when they don't. Both paths yield equivalent documents for the same source
// because one pipeline backs them.
func (r *Renderer) Open(ctx context.Context, sourcePath, htmlPath, metaPath string) (*Document, error) {
	if fileutil.FileExists(htmlPath) && fileutil.FileExists(metaPath) {
		return LoadArtifact(htmlPath, metaPath)
	}

	source, err := os.ReadFile(sourcePath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	return r.Render(ctx, string(source))
}
