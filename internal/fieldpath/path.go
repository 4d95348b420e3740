// Package fieldpath mutates sheet documents addressed by dot/bracket paths,
// e.g. "director" or "scenes[0].scene_no". Writes are copy-on-write along the
// addressed path; untouched branches keep their original references.
package fieldpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a parsed path: either a map key or a slice index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// parse splits a path into key and index segments. "a[0].b" becomes the key
// "a", the index 0, and the key "b".
func parse(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("fieldpath: empty path")
	}

	var segments []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("fieldpath: empty segment in %q", path)
		}

		key := part
		var brackets string
		if i := strings.IndexByte(part, '['); i >= 0 {
			key, brackets = part[:i], part[i:]
		}
		if key != "" {
			segments = append(segments, segment{key: key})
		} else if brackets == "" {
			return nil, fmt.Errorf("fieldpath: empty segment in %q", path)
		}

		for brackets != "" {
			if brackets[0] != '[' {
				return nil, fmt.Errorf("fieldpath: malformed index in %q", path)
			}
			end := strings.IndexByte(brackets, ']')
			if end < 0 {
				return nil, fmt.Errorf("fieldpath: unterminated index in %q", path)
			}
			n, err := strconv.Atoi(brackets[1:end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("fieldpath: bad index %q in %q", brackets[1:end], path)
			}
			segments = append(segments, segment{index: n, isIndex: true})
			brackets = brackets[end+1:]
		}
	}
	return segments, nil
}
