package packs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	faker "github.com/goliatone/go-faker"
)

// extensions are tried in order for each code.
var extensions = []string{".json", ".yaml", ".yml"}

// FSStore reads <code>.json, <code>.yaml or <code>.yml from Dir inside FS.
type FSStore struct {
	FS  fs.FS
	Dir string
}

// NewFSStore returns a store reading pack files from dir in fsys.
func NewFSStore(fsys fs.FS, dir string) FSStore {
	if dir == "" {
		dir = "."
	}
	return FSStore{FS: fsys, Dir: dir}
}

// Load implements Store. The first existing file wins.
func (s FSStore) Load(ctx context.Context, code string) (faker.Pack, bool, error) {
	if s.FS == nil {
		return faker.Pack{}, false, fmt.Errorf("packs: filesystem is required")
	}
	if err := ValidateCode(code); err != nil {
		return faker.Pack{}, false, err
	}
	for _, ext := range extensions {
		if err := ctx.Err(); err != nil {
			return faker.Pack{}, false, err
		}
		name := path.Join(s.dir(), code+ext)
		data, err := fs.ReadFile(s.FS, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return faker.Pack{}, false, fmt.Errorf("packs: read %s: %w", name, err)
		}
		format, _ := FormatFor(name)
		pack, err := Parse(code, name, format, data)
		if err != nil {
			return faker.Pack{}, false, err
		}
		return pack, true, nil
	}
	return faker.Pack{}, false, nil
}

// Codes implements Lister by scanning Dir for pack files.
func (s FSStore) Codes(context.Context) ([]string, error) {
	if s.FS == nil {
		return nil, fmt.Errorf("packs: filesystem is required")
	}
	entries, err := fs.ReadDir(s.FS, s.dir())
	if err != nil {
		return nil, fmt.Errorf("packs: list %s: %w", s.dir(), err)
	}
	seen := map[string]struct{}{}
	var codes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := FormatFor(name); !ok {
			continue
		}
		code := strings.TrimSuffix(name, path.Ext(name))
		if ValidateCode(code) != nil {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (s FSStore) dir() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}
