// Package audio carries rendered samples out of the generator: a realtime
// Device built on oto, an Offline sink for faster-than-realtime pulls, and
// adapters that expose a render callback as a byte stream or a WAV file.
//
// All adapters consume the same shape, a callback filling blocks of mono
// float64 samples, so the generator does not care which output it drives.
package audio
