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

// Package indist implements the optional indistinguishability wrapper
// around a pair of masked ciphertext streams: re-randomization,
// homomorphic noise injection, redundancy duplication, and a
// deterministic interleave-and-shuffle, plus the inverse operation that
// recovers both streams from the combined vector without ever revealing
// which label the caller was after.
package indist

import (
	"io"
	"math/big"

	"github.com/pacific-system/homomask/artifact"
	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/paillier"
	"github.com/pacific-system/homomask/sample"
)

// DefaultNoiseScale is the denominator of the noise bound nu = n / scale.
const DefaultNoiseScale = 10000

// DefaultRedundancyFactor is the number of extra re-randomized copies of
// each ciphertext woven into the combined stream when the caller does not
// pick one explicitly.
const DefaultRedundancyFactor = 1

// Wrap applies the indistinguishability layer to a pair of already
// masked, equal-length ciphertext streams, producing the single combined,
// shuffled stream and the metadata needed to invert it.
func Wrap(reader io.Reader, pk *paillier.PublicKey, streamA, streamB data.Vector, noiseScale, redundancyFactor int) (data.Vector, *artifact.IndistinguishabilityMetadata, error) {
	if len(streamA) != len(streamB) {
		return nil, nil, errs.ErrInvalidArtifact
	}
	if redundancyFactor < 1 {
		redundancyFactor = DefaultRedundancyFactor
	}
	if noiseScale < 1 {
		noiseScale = DefaultNoiseScale
	}

	expandedA, noiseA, origA, err := expand(reader, pk, streamA, noiseScale, redundancyFactor)
	if err != nil {
		return nil, nil, err
	}
	expandedB, noiseB, origB, err := expand(reader, pk, streamB, noiseScale, redundancyFactor)
	if err != nil {
		return nil, nil, err
	}

	concatenated := make(data.Vector, 0, len(expandedA)+len(expandedB))
	concatenated = append(concatenated, expandedA...)
	concatenated = append(concatenated, expandedB...)

	var shuffleSeed [16]byte
	if _, err := io.ReadFull(reader, shuffleSeed[:]); err != nil {
		return nil, nil, err
	}

	permutation := fisherYatesPermutation(len(concatenated), shuffleSeed)
	combined := make(data.Vector, len(concatenated))
	for shuffledPos, originalPos := range permutation {
		combined[shuffledPos] = concatenated[originalPos]
	}

	meta := &artifact.IndistinguishabilityMetadata{
		ShuffleSeed:        shuffleSeed,
		ShufflePermutation: permutation,
		NoiseDeltasA:       noiseA,
		NoiseDeltasB:       noiseB,
		RedundancyFactor:   redundancyFactor,
		OriginalIndicesA:   origA,
		OriginalIndicesB:   origB,
	}
	return combined, meta, nil
}

// Unwrap inverts Wrap: it undoes the shuffle, splits the concatenation
// back into the A and B buckets, collapses each bucket's redundant
// re-randomized copies down to one ciphertext per original position (the
// first occurrence), and subtracts the injected noise so the result is
// exactly the masked stream pair that was passed to Wrap.
func Unwrap(pk *paillier.PublicKey, combined data.Vector, meta *artifact.IndistinguishabilityMetadata, lengthA, lengthB int) (streamA, streamB data.Vector, err error) {
	if meta == nil {
		return nil, nil, errs.ErrInvalidArtifact
	}
	if len(meta.ShufflePermutation) != len(combined) {
		return nil, nil, errs.ErrInvalidArtifact
	}

	unshuffled := make(data.Vector, len(combined))
	for shuffledPos, originalPos := range meta.ShufflePermutation {
		if originalPos < 0 || originalPos >= len(combined) {
			return nil, nil, errs.ErrInvalidArtifact
		}
		unshuffled[originalPos] = combined[shuffledPos]
	}

	boundaryA := len(unshuffled) - len(meta.OriginalIndicesB)
	if boundaryA < 0 || boundaryA > len(unshuffled) {
		return nil, nil, errs.ErrInvalidArtifact
	}
	expandedA := unshuffled[:boundaryA]
	expandedB := unshuffled[boundaryA:]

	streamA, err = collapse(pk, expandedA, meta.OriginalIndicesA, meta.NoiseDeltasA, lengthA)
	if err != nil {
		return nil, nil, err
	}
	streamB, err = collapse(pk, expandedB, meta.OriginalIndicesB, meta.NoiseDeltasB, lengthB)
	if err != nil {
		return nil, nil, err
	}
	return streamA, streamB, nil
}

// expand re-randomizes each ciphertext in stream redundancyFactor extra
// times, injects a bounded homomorphic noise delta into every copy
// (original included), and returns the flattened copies alongside the
// per-copy noise deltas and the original index each copy traces back to.
// Deltas stay in [1, n/noiseScale) so they survive the artifact codec's
// non-negativity check.
func expand(reader io.Reader, pk *paillier.PublicKey, stream data.Vector, noiseScale, redundancyFactor int) (data.Vector, data.Vector, []int, error) {
	bound := new(big.Int).Div(pk.N, big.NewInt(int64(noiseScale)))
	if bound.Cmp(big.NewInt(2)) < 0 {
		bound = big.NewInt(2)
	}
	boundMinus1 := new(big.Int).Sub(bound, big.NewInt(1))

	copiesPerCiphertext := redundancyFactor + 1
	out := make(data.Vector, 0, len(stream)*copiesPerCiphertext)
	deltas := make(data.Vector, 0, len(stream)*copiesPerCiphertext)
	origins := make([]int, 0, len(stream)*copiesPerCiphertext)

	for idx, c := range stream {
		for rep := 0; rep < copiesPerCiphertext; rep++ {
			rerandomized, err := paillier.Randomize(reader, pk, c)
			if err != nil {
				return nil, nil, nil, err
			}

			delta, err := bigmath.RandomBelow(reader, boundMinus1)
			if err != nil {
				return nil, nil, nil, err
			}
			delta.Add(delta, big.NewInt(1))

			noised := paillier.AddConstant(pk, rerandomized, delta)
			out = append(out, noised)
			deltas = append(deltas, delta)
			origins = append(origins, idx)
		}
	}

	return out, deltas, origins, nil
}

// collapse reverses expand: it removes each copy's noise delta, then
// keeps only the first copy seen for each original index, in index
// order, reconstructing the pre-expansion stream.
func collapse(pk *paillier.PublicKey, expanded data.Vector, origins []int, deltas data.Vector, originalLength int) (data.Vector, error) {
	if len(expanded) != len(origins) || len(expanded) != len(deltas) {
		return nil, errs.ErrInvalidArtifact
	}

	seen := make([]bool, originalLength)
	out := make(data.Vector, originalLength)

	for i, c := range expanded {
		idx := origins[i]
		if idx < 0 || idx >= originalLength {
			return nil, errs.ErrInvalidArtifact
		}
		if seen[idx] {
			continue
		}

		negDelta := new(big.Int).Neg(deltas[i])
		out[idx] = paillier.AddConstant(pk, c, negDelta)
		seen[idx] = true
	}

	for _, ok := range seen {
		if !ok {
			return nil, errs.ErrInvalidArtifact
		}
	}
	return out, nil
}

// fisherYatesPermutation deterministically shuffles [0, n) using a
// salsa20 keystream keyed by seed, expanded to a 32-byte key the way
// sample.UniformDet expects. The returned slice maps shuffled position
// to pre-shuffle position, which both Wrap and Unwrap need.
func fisherYatesPermutation(n int, seed [16]byte) []int {
	var key [32]byte
	copy(key[:], seed[:])
	copy(key[16:], seed[:])

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		sampler := sample.NewUniformDetWithNonce(big.NewInt(int64(i+1)), &key, nonceForSwap(i))
		j := int(sampler.Sample().Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func nonceForSwap(i int) [8]byte {
	var nonce [8]byte
	v := uint64(i)
	for k := 0; k < 8; k++ {
		nonce[k] = byte(v >> (8 * uint(k)))
	}
	return nonce
}

// NewShuffleSeed draws a fresh random 16-byte shuffle seed from reader, a
// convenience for callers assembling Wrap's randomness.
func NewShuffleSeed(reader io.Reader) ([16]byte, error) {
	var seed [16]byte
	_, err := io.ReadFull(reader, seed[:])
	return seed, err
}
