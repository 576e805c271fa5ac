package feed

import (
	"fmt"
	"os"
)

// ReadSeed loads a feed file from local disk
func ReadSeed(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer f.Close()
	return readLimited(f, maxSize)
}
