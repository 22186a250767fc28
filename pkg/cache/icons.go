// Package cache provides the icon cache used while rendering genograms and
// content hashing helpers.
//
// # Icons
//
// Badge and relationship icons are small SVG files looked up by a relative
// path such as "female/treatment.svg". [Icons] is a read-through cache over
// an [fs.FS]: the first lookup of a path reads it, later lookups are served
// from memory. Entries are never invalidated, and absent icons are
// remembered as absent.
//
// An Icons value belongs to one renderer. It is not safe for concurrent use;
// concurrent renders each get their own.
//
//	icons := cache.NewIconsDir("assets/icons")
//	svg, ok := icons.Icon("male/substance-use.svg")
//
// A nil source (see [NewNullIcons]) answers every lookup with a miss, which
// renders plain diagrams without decorations.
package cache

import (
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/observability"
)

// Icons is a per-renderer read-through cache of icon file contents.
type Icons struct {
	fsys    fs.FS
	entries map[string]string
	missing map[string]struct{}
}

// NewIcons creates an icon cache reading from fsys.
func NewIcons(fsys fs.FS) *Icons {
	return &Icons{
		fsys:    fsys,
		entries: make(map[string]string),
		missing: make(map[string]struct{}),
	}
}

// NewIconsDir creates an icon cache reading from a directory on disk.
// An empty dir yields a null cache.
func NewIconsDir(dir string) *Icons {
	if dir == "" {
		return NewNullIcons()
	}
	return NewIcons(os.DirFS(dir))
}

// NewNullIcons creates an icon cache that never finds anything.
func NewNullIcons() *Icons {
	return NewIcons(nil)
}

// Icon returns the content of the icon at path. It reports false when the
// path is invalid, the icon does not exist or cannot be read.
func (c *Icons) Icon(path string) (string, bool) {
	if c == nil || c.fsys == nil {
		return "", false
	}
	if svg, ok := c.entries[path]; ok {
		observability.Cache().OnIconHit(path)
		return svg, true
	}
	if _, ok := c.missing[path]; ok {
		observability.Cache().OnIconMissing(path)
		return "", false
	}

	observability.Cache().OnIconMiss(path)
	svg, err := c.load(path)
	if err != nil {
		c.missing[path] = struct{}{}
		observability.Cache().OnIconMissing(path)
		return "", false
	}
	c.entries[path] = svg
	return svg, true
}

// Load is like [Icons.Icon] but reports why an icon is unavailable.
func (c *Icons) Load(path string) (string, error) {
	if svg, ok := c.Icon(path); ok {
		return svg, nil
	}
	if err := errors.ValidateIconPath(path); err != nil {
		return "", err
	}
	return "", errors.New(errors.ErrCodeFileNotFound, "icon %s not found", path)
}

func (c *Icons) load(path string) (string, error) {
	if err := errors.ValidateIconPath(path); err != nil {
		return "", err
	}
	if !fs.ValidPath(path) {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid icon path %q", path)
	}
	f, err := c.fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Len returns the number of cached icons.
func (c *Icons) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
