package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/counselit/core"
)

// Key prefixes for different data types
const (
	documentPrefix      = "colrec"
	activeGenerationKey = "colgen"
)

// makeGenerationPrefix generates the key prefix for one index generation.
// Format: prefix:generation:
func makeGenerationPrefix(generation uint64) []byte {
	prefix := documentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 9 // 8 bytes for generation + trailing separator
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], generation)
	buf[totalSize-1] = ':'
	return buf
}

// makeDocumentKey generates a key for a document within a generation.
// Format: prefix:generation:id
func makeDocumentKey(generation uint64, id core.ID) []byte {
	genPrefix := makeGenerationPrefix(generation)
	buf := make([]byte, len(genPrefix)+8)
	offset := copy(buf, genPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeActiveGenerationKey generates the key holding the active generation pointer.
func makeActiveGenerationKey() []byte {
	return []byte(fmt.Sprintf("%s:ptr", activeGenerationKey))
}
