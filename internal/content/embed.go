package content

import _ "embed"

//go:embed default.yaml
var defaultPack []byte

// ActivePackName is the storage key the runtime loads its pack from. The
// seed command writes under the same name.
const ActivePackName = "active"

// DefaultRaw returns the raw embedded default pack document.
func DefaultRaw() []byte {
	raw := make([]byte, len(defaultPack))
	copy(raw, defaultPack)
	return raw
}

// Default parses the embedded default pack.
func Default() (Pack, error) {
	return Parse(defaultPack)
}
