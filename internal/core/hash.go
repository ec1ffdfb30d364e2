package core

import (
	"hash/fnv"
	"path"
	"strconv"
	"strings"
)

// HashContent is a short content fingerprint used for asset names and
// file revisions.
func HashContent(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return strconv.FormatUint(h.Sum64(), 16)
}

// HashedName inserts the content hash before the extension, so
// "site.css" becomes "site.<hash>.css".
func HashedName(name string, content []byte) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + HashContent(content) + ext
}
