// Package cachekey composes deterministic cache keys from heterogeneous
// value sequences. Keys are SHA-256 digests over length-framed canonical
// encodings, so reordering parts or shifting bytes between adjacent parts
// always produces a different key.
package cachekey

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Frame tags keep JSON-encoded parts and coerced fallback parts in disjoint
// digest domains.
const (
	tagJSON    byte = 'j'
	tagCoerced byte = 's'
)

// Key maps an ordered sequence of values to a fixed-length hex string. Equal
// sequences produce equal keys; different sequences, including reorderings
// and reframings such as ("a","b") versus ("ab"), produce different keys with
// negligible collision probability.
//
// Parts are canonicalized through encoding/json; values that cannot be
// marshaled (channels, functions) degrade to their string coercion instead of
// failing.
func Key(parts ...any) string {
	digest := sha256.New()
	var frame [5]byte

	for _, part := range parts {
		encoded, tag := encodePart(part)
		frame[0] = tag
		binary.BigEndian.PutUint32(frame[1:], uint32(len(encoded)))
		digest.Write(frame[:])
		digest.Write(encoded)
	}

	return hex.EncodeToString(digest.Sum(nil))
}

// NamespacedKey prefixes a human-readable namespace tag onto the composed
// key. The namespace rides outside the digest, so it cannot weaken collision
// resistance between part sequences.
func NamespacedKey(namespace string, parts ...any) string {
	return namespace + ":" + Key(parts...)
}

func encodePart(part any) ([]byte, byte) {
	encoded, err := json.Marshal(part)
	if err != nil {
		return []byte(fmt.Sprint(part)), tagCoerced
	}

	return encoded, tagJSON
}
