package rpng

// File I/O convenience wrappers, kept separate from the codec core (spec
// §6): the byte-slab load/save collaborator is explicitly out of scope for
// the core, so these are trivial and easy to delete for a caller who wants
// zero filesystem coupling.

import "os"

// LoadFile reads path into memory whole.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// SaveFile writes data to path, creating or truncating it, with permissions
// 0644.
func SaveFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
