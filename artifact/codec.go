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

import (
	"encoding/base64"
	"encoding/json"
	"math/big"

	pkgerrors "github.com/pkg/errors"

	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/paillier"
)

// Encode serializes a Bundle into the canonical JSON artifact document.
func Encode(b *Bundle) ([]byte, error) {
	streamA := b.StreamA
	streamB := b.StreamB
	if b.Indist != nil {
		if len(b.CombinedStream)%2 != 0 {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "combined stream length must be even")
		}
		half := len(b.CombinedStream) / 2
		streamA = b.CombinedStream[:half]
		streamB = b.CombinedStream[half:]
	}

	w := wireArtifact{
		FormatTag: FormatTag,
		Version:   Version,
		PublicKey: wirePublicKey{
			N: b.PublicKey.N.String(),
			G: b.PublicKey.G.String(),
		},
		ChunkSize: b.ChunkSize,
		LengthA:   b.LengthA,
		LengthB:   b.LengthB,
		StreamA:   vectorToHex(streamA),
		StreamB:   vectorToHex(streamB),
		MaskMetadataA: wireMaskMetadata{
			Label: b.MaskMetadataA.Label,
			Seed:  base64.StdEncoding.EncodeToString(b.MaskMetadataA.Seed[:]),
		},
		MaskMetadataB: wireMaskMetadata{
			Label: b.MaskMetadataB.Label,
			Seed:  base64.StdEncoding.EncodeToString(b.MaskMetadataB.Seed[:]),
		},
	}

	if b.Indist != nil {
		w.Indist = &wireIndistMetadata{
			ShuffleSeed:        base64.StdEncoding.EncodeToString(b.Indist.ShuffleSeed[:]),
			ShufflePermutation: b.Indist.ShufflePermutation,
			NoiseDeltasA:       vectorToHex(b.Indist.NoiseDeltasA),
			NoiseDeltasB:       vectorToHex(b.Indist.NoiseDeltasB),
			RedundancyFactor:   b.Indist.RedundancyFactor,
			OriginalIndicesA:   b.Indist.OriginalIndicesA,
			OriginalIndicesB:   b.Indist.OriginalIndicesB,
		}
	}

	return json.Marshal(w)
}

// Decode parses and validates a serialized artifact, returning a Bundle.
// Any schema violation fails with errs.ErrInvalidArtifact; no partial
// result is ever returned alongside an error.
func Decode(raw []byte) (*Bundle, error) {
	var w wireArtifact
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, err.Error())
	}

	if w.FormatTag != FormatTag {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "unrecognized format_tag")
	}
	if w.Version != Version {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "unrecognized version")
	}
	if len(w.StreamA) != len(w.StreamB) {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "stream_A and stream_B length mismatch")
	}

	n, ok := new(big.Int).SetString(w.PublicKey.N, 10)
	if !ok || n.Sign() <= 0 {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed public key n")
	}
	g, ok := new(big.Int).SetString(w.PublicKey.G, 10)
	if !ok {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed public key g")
	}
	nSquare := new(big.Int).Mul(n, n)
	pk := &paillier.PublicKey{N: n, G: g, NSquare: nSquare}

	streamA, err := hexToVector(w.StreamA, nSquare)
	if err != nil {
		return nil, err
	}
	streamB, err := hexToVector(w.StreamB, nSquare)
	if err != nil {
		return nil, err
	}

	seedA, err := decodeSeed(w.MaskMetadataA.Seed)
	if err != nil {
		return nil, err
	}
	seedB, err := decodeSeed(w.MaskMetadataB.Seed)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		PublicKey:     pk,
		ChunkSize:     w.ChunkSize,
		LengthA:       w.LengthA,
		LengthB:       w.LengthB,
		StreamA:       streamA,
		StreamB:       streamB,
		MaskMetadataA: MaskMetadata{Label: w.MaskMetadataA.Label, Seed: seedA},
		MaskMetadataB: MaskMetadata{Label: w.MaskMetadataB.Label, Seed: seedB},
	}

	if w.Indist != nil {
		shuffleSeed, err := decodeShuffleSeed(w.Indist.ShuffleSeed)
		if err != nil {
			return nil, err
		}
		noiseA, err := hexToVector(w.Indist.NoiseDeltasA, nSquare)
		if err != nil {
			return nil, err
		}
		noiseB, err := hexToVector(w.Indist.NoiseDeltasB, nSquare)
		if err != nil {
			return nil, err
		}

		copies := w.Indist.RedundancyFactor + 1
		if w.Indist.RedundancyFactor < 1 {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "redundancy_factor must be >= 1")
		}
		if len(w.Indist.OriginalIndicesA) != len(w.Indist.OriginalIndicesB) {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "redundancy index maps length mismatch")
		}
		if len(w.Indist.OriginalIndicesA)%copies != 0 {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "redundancy index map not divisible by copy count")
		}

		// The wire streams are the two halves of the combined shuffled
		// vector; rejoin them before handing the bundle to the unwrapper.
		combined := make(data.Vector, 0, len(streamA)+len(streamB))
		combined = append(combined, streamA...)
		combined = append(combined, streamB...)

		if len(combined) != len(w.Indist.OriginalIndicesA)+len(w.Indist.OriginalIndicesB) {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "combined stream and index maps length mismatch")
		}
		if len(w.Indist.ShufflePermutation) != len(combined) {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "shuffle permutation length mismatch")
		}

		bundle.StreamA = nil
		bundle.StreamB = nil
		bundle.CombinedStream = combined
		bundle.PaddedLength = len(w.Indist.OriginalIndicesA) / copies
		bundle.Indist = &IndistinguishabilityMetadata{
			ShuffleSeed:        shuffleSeed,
			ShufflePermutation: w.Indist.ShufflePermutation,
			NoiseDeltasA:       noiseA,
			NoiseDeltasB:       noiseB,
			RedundancyFactor:   w.Indist.RedundancyFactor,
			OriginalIndicesA:   w.Indist.OriginalIndicesA,
			OriginalIndicesB:   w.Indist.OriginalIndicesB,
		}
	}

	return bundle, nil
}

func vectorToHex(v data.Vector) []string {
	out := make([]string, len(v))
	for i, c := range v {
		out[i] = c.Text(16)
	}
	return out
}

func hexToVector(hexes []string, bound *big.Int) (data.Vector, error) {
	out := make(data.Vector, len(hexes))
	for i, h := range hexes {
		c, ok := new(big.Int).SetString(h, 16)
		if !ok {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed ciphertext")
		}
		if c.Sign() < 0 || c.Cmp(bound) >= 0 {
			return nil, errs.ErrInvalidCiphertext
		}
		out[i] = c
	}
	return out, nil
}

func decodeSeed(s string) ([32]byte, error) {
	var seed [32]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return seed, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed seed encoding")
	}
	if len(raw) != 32 {
		return seed, pkgerrors.Wrap(errs.ErrInvalidArtifact, "seed must be 32 bytes")
	}
	copy(seed[:], raw)
	return seed, nil
}

func decodeShuffleSeed(s string) ([16]byte, error) {
	var seed [16]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return seed, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed shuffle seed encoding")
	}
	if len(raw) != 16 {
		return seed, pkgerrors.Wrap(errs.ErrInvalidArtifact, "shuffle seed must be 16 bytes")
	}
	copy(seed[:], raw)
	return seed, nil
}
