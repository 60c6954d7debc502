package cmap

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed predefined/*.cmap
var predefinedFS embed.FS

var predefinedNames = map[string]string{
	"Identity-H":    "predefined/identity-h.cmap",
	"Identity-V":    "predefined/identity-v.cmap",
	"UniGB-UCS2-H":  "predefined/unigb-ucs2-h.cmap",
	"UniJIS-UCS2-H": "predefined/unijis-ucs2-h.cmap",
}

var (
	predefinedCacheMu sync.Mutex
	predefinedCache   = make(map[string]*CMap)
)

// LoadPredefined returns the named predefined CMap (e.g. "Identity-H"),
// parsing and caching it on first use. It is the load callback most
// callers pass to Parse for resolving usecmap references and for a
// composite font's /Encoding when that entry names a predefined CMap
// directly instead of embedding one as a stream.
func LoadPredefined(name string) (*CMap, error) {
	predefinedCacheMu.Lock()
	defer predefinedCacheMu.Unlock()

	if cm, ok := predefinedCache[name]; ok {
		return cm, nil
	}

	path, ok := predefinedNames[name]
	if !ok {
		return nil, fmt.Errorf("cmap: unknown predefined CMap %q", name)
	}
	data, err := predefinedFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cmap: reading predefined %q: %w", name, err)
	}

	cm, err := Parse(data, LoadPredefined)
	if err != nil {
		return nil, fmt.Errorf("cmap: parsing predefined %q: %w", name, err)
	}
	cm.Name = name
	predefinedCache[name] = cm
	return cm, nil
}

// IsIdentity reports whether name is one of the Identity-H/Identity-V
// predefined CMaps, which map every 2-byte code directly to the CID of
// the same value (spec.md §4.6) and therefore need no table lookup at
// all in the common case.
func IsIdentity(name string) bool {
	return strings.HasPrefix(name, "Identity-")
}
