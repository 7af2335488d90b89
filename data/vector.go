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

// Package data provides the Vector container used throughout the scheme
// for chunk, ciphertext, noise-delta, and mask-parameter sequences.
package data

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pacific-system/homomask/sample"
)

// Vector is a sequence of *big.Int values. What the values mean depends
// on the holder: plaintext chunks, ciphertexts, noise deltas, or mask
// parameters.
type Vector []*big.Int

// NewVector wraps values as a Vector. The slice is not copied.
func NewVector(values []*big.Int) Vector {
	return Vector(values)
}

// NewRandomVector draws length elements from sampler.
func NewRandomVector(length int, sampler sample.Sampler) (Vector, error) {
	vec := make(Vector, length)
	for i := range vec {
		v, err := sampler.Sample()
		if err != nil {
			return nil, err
		}
		vec[i] = v
	}

	return vec, nil
}

// NewRandomDetVector fills a vector with length elements from [0, max),
// drawn from the deterministic keystream sampler keyed by key. The same
// (key, max, length) always reproduces the same vector; the mask
// generator relies on this to rebuild identical parameter vectors from
// a public seed at decryption time.
func NewRandomDetVector(length int, max *big.Int, key *[32]byte) (Vector, error) {
	if max.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("upper bound on samples should be at least 2")
	}

	det := sample.NewUniformDet(max, key)
	vec := make(Vector, length)
	for i := range vec {
		vec[i] = det.Sample()
	}

	return vec, nil
}

// Copy returns a deep copy of v: the elements are fresh big.Ints, so
// mutating one vector never bleeds into the other.
func (v Vector) Copy() Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Set(c)
	}

	return out
}

// Mod reduces every element modulo m. The result is a new Vector.
func (v Vector) Mod(m *big.Int) Vector {
	out := make(Vector, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Mod(c, m)
	}

	return out
}

// String renders the elements space-separated, mainly for test diffs.
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = c.String()
	}

	return strings.Join(parts, " ")
}
