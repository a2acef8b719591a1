package analyzer

import (
	"fmt"
	"github.com/minio/highwayhash"
)

// checksumKey is fixed so checksums stay comparable across runs
var checksumKey = []byte("phpda-unit-checksum-key-00000000")

// Unit represents a single PHP source to analyze
type Unit struct {
	Path   string
	Source []byte
}

// Checksum returns HighwayHash-64 of unit source, callers compare it between runs to skip unchanged units
func (u *Unit) Checksum() (uint64, error) {
	hash, err := highwayhash.New64(checksumKey)
	if err != nil {
		return 0, fmt.Errorf("failed to create checksum of %s: %w", u.Path, err)
	}
	if _, err = hash.Write(u.Source); err != nil {
		return 0, fmt.Errorf("failed to compute checksum of %s: %w", u.Path, err)
	}
	return hash.Sum64(), nil
}
