/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package artifact implements the stream artifact data model and its
// serialize/deserialize codec: a stable, length-padded document carrying
// both masked ciphertext streams, the public key, and enough metadata to
// invert the mask and (optionally) the indistinguishability layer, but
// never which stream is "authentic".
package artifact

import (
	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/paillier"
)

// FormatTag and Version identify the artifact format. The codec rejects
// any document that does not carry exactly these values.
const (
	FormatTag = "homomorphic_masked"
	Version   = "1.0"
)

// MaskMetadata names which label a stream's mask parameters were derived
// for, and the (public) seed they were derived from. Both labels in a
// Bundle share the same seed; only the label field differs.
type MaskMetadata struct {
	Label string
	Seed  [32]byte
}

// IndistinguishabilityMetadata records everything needed to invert the
// indistinguishability wrapper. It is present only when a Bundle was
// produced with that layer enabled; the codec rejects any other shape.
type IndistinguishabilityMetadata struct {
	ShuffleSeed        [16]byte
	ShufflePermutation []int // shuffled position -> pre-shuffle concatenated position
	NoiseDeltasA       data.Vector
	NoiseDeltasB       data.Vector
	RedundancyFactor   int
	OriginalIndicesA   []int // pre-shuffle A-bucket position -> pre-redundancy original index
	OriginalIndicesB   []int // pre-shuffle B-bucket position -> pre-redundancy original index
}

// Bundle is the in-memory form of a serialized artifact. When Indist is
// nil, StreamA/StreamB are the masked, length-matched ciphertext streams
// directly. When Indist is non-nil, CombinedStream holds the single
// interleaved-and-shuffled ciphertext vector and StreamA/StreamB are
// empty: the combined vector plus Indist's permutation and index maps
// are the sole authority for recovering either stream. On the wire the
// combined vector is stored split in half across the two stream fields,
// so the document always carries equal-length stream_A and stream_B
// whether or not the wrapper was applied.
type Bundle struct {
	PublicKey *paillier.PublicKey
	ChunkSize int
	LengthA   int
	LengthB   int
	StreamA   data.Vector
	StreamB   data.Vector

	// CombinedStream and PaddedLength are populated only when Indist is
	// non-nil. PaddedLength is the shared chunk count both masked streams
	// were padded to before Wrap folded them together; Unwrap needs it to
	// know where each recovered stream ends. The codec re-derives it from
	// the redundancy metadata on decode.
	CombinedStream data.Vector
	PaddedLength   int

	MaskMetadataA MaskMetadata
	MaskMetadataB MaskMetadata
	Indist        *IndistinguishabilityMetadata
}
