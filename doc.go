// Package sentinel1decoder decodes Sentinel-1 SAR Level-0 space-packet
// payloads, per ESA S1-IF-ASD-PL-0007.
//
// The package covers three concerns:
//   - Packet header parsing: the fixed 6-byte primary header and, when
//     present, the 62-byte secondary header, exposed as columnar,
//     parallel-slice records via [DecodeHeaders].
//   - Bypass payload decoding: [DecodeBypassPacket] unpacks four
//     channels of 10-bit signed samples into interleaved complex
//     amplitudes.
//   - FDBAQ payload decoding: [DecodeFDBAQPacket] Huffman-decodes
//     block-adaptive quantized samples, recovering per-block BRC/THIDX
//     metadata from the IE and QE channels before reconstructing sample
//     amplitudes.
//
// [DecodeBypassBatch] and [DecodeFDBAQBatch] decode many independently
// framed packets concurrently.
//
// File discovery, a CLI, configuration loading, array-library bindings,
// progress reporting, encoding, ancillary-field reinterpretation, and
// resampling/geometric correction are out of scope for this package.
package sentinel1decoder
