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

package artifact

// wirePublicKey carries the public key as decimal strings, never native
// JSON numbers, to avoid platform integer-size limits on large moduli.
type wirePublicKey struct {
	N string `json:"n"`
	G string `json:"g"`
}

type wireMaskMetadata struct {
	Label string `json:"label"`
	Seed  string `json:"seed"` // base64
}

// wireIndistMetadata is the one accepted shape of the
// indistinguishability_metadata block; the decoder rejects anything else.
type wireIndistMetadata struct {
	ShuffleSeed        string   `json:"shuffle_seed"` // base64
	ShufflePermutation []int    `json:"shuffle_permutation"`
	NoiseDeltasA       []string `json:"noise_deltas_A"` // hex
	NoiseDeltasB       []string `json:"noise_deltas_B"` // hex
	RedundancyFactor   int      `json:"redundancy_factor"`
	OriginalIndicesA   []int    `json:"original_indices_A"`
	OriginalIndicesB   []int    `json:"original_indices_B"`
}

// wireArtifact is the serialized document. stream_A and stream_B always
// have equal length: without the indistinguishability layer they are the
// two masked streams; with it they are the two halves of the combined
// shuffled vector, which carries no per-stream structure anyway.
type wireArtifact struct {
	FormatTag     string              `json:"format_tag"`
	Version       string              `json:"version"`
	PublicKey     wirePublicKey       `json:"public_key"`
	ChunkSize     int                 `json:"chunk_size"`
	LengthA       int                 `json:"length_A"`
	LengthB       int                 `json:"length_B"`
	StreamA       []string            `json:"stream_A"` // hex
	StreamB       []string            `json:"stream_B"` // hex
	MaskMetadataA wireMaskMetadata    `json:"mask_metadata_A"`
	MaskMetadataB wireMaskMetadata    `json:"mask_metadata_B"`
	Indist        *wireIndistMetadata `json:"indistinguishability_metadata,omitempty"`
}
