package decompress

// None is the identity decompressor: the payload is stored uncompressed.
func None(compressed []byte, dsize uint32) ([]byte, error) {
	out := make([]byte, len(compressed))
	copy(out, compressed)
	return out, nil
}
