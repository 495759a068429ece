// Package encoding converts between vecio payload bytes and Go float slices.
//
// A payload is a contiguous run of little-endian IEEE-754 numbers, either all
// 4 bytes (float32) or all 8 bytes (float64) wide. Writers emit payloads
// through endian.Policy; this package covers the read side and the
// element-type bookkeeping shared by both directions.
//
// # Decoding
//
//	vals, err := encoding.DecodePayload[float64](payload)
//
// On a little-endian host DecodePayload is a single bulk copy. On a
// big-endian host each element is assembled through the little-endian engine.
//
// For lazy access without materializing the whole slice, use PayloadDecoder:
//
//	dec := encoding.NewPayloadDecoder[float32]()
//	for v := range dec.All(payload) {
//	    ...
//	}
//	v, ok := dec.At(payload, 42)
package encoding
