// Package sdif reads and writes the Sound Description Interchange
// Format, a chunked big-endian container of timestamped frames holding
// typed 2-D matrices.
//
// Ownership boundary:
// - frame/matrix wire codec and limits
// - type tag registry and TOML extensions
// - read/write session lifecycle
//
// Unknown type tags are never fatal: frames carrying them decode as
// opaque payloads by declared size, so files with extension types stay
// readable and copyable.
package sdif
