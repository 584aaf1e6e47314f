package source

import (
	"path"
	"regexp"
	"strings"
)

var humps = regexp.MustCompile(`([A-Z])`)

// LocalIdentName derives the CSS-module class prefix of a style file from
// its path below the first "src" segment, e.g.
// "src/components/GlobalHeader/index.less" => "ygd-pro-components-global-header-index-".
// ok is false when the path has no "src" segment.
func LocalIdentName(relPath string) (name string, ok bool) {
	parts := strings.Split(path.Clean(strings.ReplaceAll(relPath, "\\", "/")), "/")
	idx := -1
	for i, p := range parts {
		if p == "src" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}

	// Only the first ".less" below src is dropped, even when it names a directory.
	rest := strings.Replace("/"+strings.Join(parts[idx+1:], "/"), ".less", "", 1)
	segments := strings.Split(rest, "/")
	for i, p := range segments {
		segments[i] = strings.ToLower(humps.ReplaceAllString(p, "-$1"))
	}
	name = "ygd-pro" + strings.Join(segments, "-") + "-"
	return strings.ReplaceAll(name, "--", "-"), true
}
