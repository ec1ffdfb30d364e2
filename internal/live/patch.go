package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	ErrInvalidPath  = errors.New("live: invalid patch path")
	ErrPathNotFound = errors.New("live: patch path not found")
)

// Patch is a set of field mutations in studio path syntax, for example
// pageBuilder[_key=="b"].title.
type Patch struct {
	Set   map[string]json.RawMessage `json:"set,omitempty"`
	Unset []string                   `json:"unset,omitempty"`
}

// ApplyPatch applies every set, in path order, then every unset. Unsetting
// a path that does not exist is not an error.
func ApplyPatch(doc []byte, p Patch) ([]byte, error) {
	paths := make([]string, 0, len(p.Set))
	for path := range p.Set {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := doc
	for _, path := range paths {
		resolved, err := resolvePath(out, path)
		if err != nil {
			return nil, err
		}
		out, err = sjson.SetRawBytes(out, resolved, p.Set[path])
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", path, err)
		}
	}

	for _, path := range p.Unset {
		resolved, err := resolvePath(out, path)
		if errors.Is(err, ErrPathNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out, err = sjson.DeleteBytes(out, resolved)
		if err != nil {
			return nil, fmt.Errorf("unset %s: %w", path, err)
		}
	}
	return out, nil
}

// resolvePath turns a studio path into a gjson/sjson path against doc,
// replacing key selectors with the current array index.
func resolvePath(doc []byte, path string) (string, error) {
	segments, err := splitPath(path)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, seg := range segments {
		name, selectors, err := splitSelectors(seg)
		if err != nil {
			return "", fmt.Errorf("%w: %q", err, path)
		}
		if name != "" {
			parts = append(parts, escapeName(name))
		}
		for _, sel := range selectors {
			if n, err := strconv.Atoi(sel); err == nil {
				parts = append(parts, strconv.Itoa(n))
				continue
			}
			want, ok := keySelector(sel)
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			idx := indexOfKey(gjson.GetBytes(doc, strings.Join(parts, ".")), want)
			if idx < 0 {
				return "", fmt.Errorf("%w: %q", ErrPathNotFound, path)
			}
			parts = append(parts, strconv.Itoa(idx))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return strings.Join(parts, "."), nil
}

func splitPath(path string) ([]string, error) {
	var segments []string
	var cur strings.Builder
	depth := 0
	quoted := false
	for _, r := range path {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			depth++
		case r == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
		case r == '.' && depth == 0:
			segments = append(segments, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if depth != 0 || quoted {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	segments = append(segments, cur.String())
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

func splitSelectors(seg string) (string, []string, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, nil
	}
	name := seg[:open]
	rest := seg[open:]
	var selectors []string
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, ErrInvalidPath
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, ErrInvalidPath
		}
		selectors = append(selectors, rest[1:end])
		rest = rest[end+1:]
	}
	return name, selectors, nil
}

func keySelector(sel string) (string, bool) {
	k, v, ok := strings.Cut(sel, "==")
	if !ok || strings.TrimSpace(k) != "_key" {
		return "", false
	}
	v = strings.TrimSpace(v)
	unquoted, err := strconv.Unquote(v)
	if err != nil {
		return "", false
	}
	return unquoted, true
}

func indexOfKey(arr gjson.Result, key string) int {
	if !arr.IsArray() {
		return -1
	}
	idx := -1
	i := 0
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.Get("_key").String() == key {
			idx = i
			return false
		}
		i++
		return true
	})
	return idx
}

func escapeName(name string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)
	return r.Replace(name)
}
