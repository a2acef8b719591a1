package repository

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// Source represents a discovered PHP unit
type Source struct {
	// Path is relative to the walked base URL, separated by slash
	Path    string
	URL     string
	Content []byte
}

// Lister discovers unit sources under a base URL
type Lister struct {
	fs         afs.Service
	extensions []string
	ignore     map[string]bool
}

// NewLister creates a lister matching extensions and skipping ignored directory names
func NewLister(fs afs.Service, extensions []string, ignore []string) *Lister {
	if fs == nil {
		fs = afs.New()
	}
	ret := &Lister{fs: fs, extensions: extensions, ignore: map[string]bool{}}
	for _, name := range ignore {
		ret.ignore[name] = true
	}
	return ret
}

// Sources walks baseURL recursively and returns matching sources sorted by path
func (l *Lister) Sources(ctx context.Context, baseURL string) ([]*Source, error) {
	var sources []*Source
	err := l.fs.Walk(ctx, baseURL, func(ctx context.Context, walkURL string, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || l.isIgnored(parent) || !l.matches(info.Name()) {
			return true, nil
		}
		source := &Source{
			Path: path.Join(parent, info.Name()),
			URL:  url.Join(walkURL, parent, info.Name()),
		}
		var err error
		if reader != nil {
			source.Content, err = io.ReadAll(reader)
		} else {
			source.Content, err = l.fs.DownloadWithURL(ctx, source.URL)
		}
		if err != nil {
			return false, fmt.Errorf("failed to read unit %v: %w", source.URL, err)
		}
		sources = append(sources, source)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list units %v: %w", baseURL, err)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Path < sources[j].Path
	})
	return sources, nil
}

func (l *Lister) isIgnored(parent string) bool {
	if len(l.ignore) == 0 || parent == "" {
		return false
	}
	for _, segment := range strings.Split(parent, "/") {
		if l.ignore[segment] {
			return true
		}
	}
	return false
}

func (l *Lister) matches(fileName string) bool {
	for _, ext := range l.extensions {
		if strings.HasSuffix(fileName, ext) {
			return true
		}
	}
	return false
}
