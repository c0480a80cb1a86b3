// Package dicomutil holds small helpers the CLI and callers use alongside
// the core reader, adapted from the reference implementation's own
// pkg/util.
package dicomutil

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// SyntheticInstanceUID derives a stable, deterministic UUID string from
// the raw bytes of a dataset — used to label an anonymous dataset when
// SOPInstanceUID is absent. Unlike a randomly generated UUID,
// the same input bytes always produce the same label.
//
// Adapted from the reference HashUUID helper, which hashed a
// JSON-marshaled value; here it hashes the raw file bytes directly since
// there is no JSON-able value at this layer.
func SyntheticInstanceUID(data []byte) string {
	hash := md5.Sum(data)
	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		return ""
	}
	return id.String()
}
