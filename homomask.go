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

// Package homomask jointly encrypts two plaintexts into a single
// artifact from which two different keys recover the two different
// plaintexts. Nothing in the artifact, and nothing in either recovered
// plaintext, marks one of them as the authentic one; that designation is
// operator intent, never data. The scheme composes a Paillier engine, a
// keyed homomorphic affine mask per stream, a deterministic key-to-label
// selector, and an optional indistinguishability wrapper.
//
// This package is the public facade. The building blocks live in their
// own packages (paillier, mask, selector, dualstream, indist, artifact)
// for callers that need finer control.
package homomask

import (
	"github.com/pacific-system/homomask/artifact"
	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/dualstream"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/indist"
	"github.com/pacific-system/homomask/paillier"
	"github.com/pacific-system/homomask/selector"
)

// DefaultChunkSize is the chunk size EncryptPair uses when the caller
// does not pick one. It leaves ample headroom below a 1024-bit modulus
// for the intermediate values the mask produces.
const DefaultChunkSize = 64

// RecommendedKeyBits is the key length suggested for production use;
// 1024 is accepted for test harnesses.
const RecommendedKeyBits = 2048

// EncryptOptions configures EncryptPair.
type EncryptOptions struct {
	// ChunkSize is the plaintext bytes packed into each Paillier
	// plaintext integer. Must satisfy ChunkSize*8 < bits(n).
	ChunkSize int

	// UseIndistinguishability enables the re-randomize / noise /
	// redundancy / shuffle wrapper.
	UseIndistinguishability bool

	// NoiseScale in [0, 1] scales the homomorphic noise bound n/10^4
	// linearly; 0 means use the full default bound.
	NoiseScale float64

	// RedundancyFactor >= 1 is the number of extra re-randomized copies
	// of each ciphertext the wrapper emits.
	RedundancyFactor int
}

// DefaultEncryptOptions returns the default configuration. EncryptPair
// substitutes DefaultChunkSize for a zero ChunkSize and the full default
// noise bound for a zero NoiseScale; a zero RedundancyFactor is not
// replaced and fails Validate.
func DefaultEncryptOptions() EncryptOptions {
	return EncryptOptions{
		ChunkSize:               DefaultChunkSize,
		UseIndistinguishability: false,
		NoiseScale:              1.0,
		RedundancyFactor:        indist.DefaultRedundancyFactor,
	}
}

// Validate reports errs.ErrInvalidOptions for out-of-range option
// values. Chunk size is checked against the modulus at encrypt time,
// not here.
func (o EncryptOptions) Validate() error {
	if o.NoiseScale < 0 || o.NoiseScale > 1 {
		return errs.ErrInvalidOptions
	}
	if o.RedundancyFactor < 1 {
		return errs.ErrInvalidOptions
	}
	return nil
}

// GenerateKeypair generates a Paillier keypair of the given modulus bit
// length from the process CSPRNG.
func GenerateKeypair(bits int) (*paillier.PublicKey, *paillier.PrivateKey, error) {
	return paillier.GenerateKeypair(bigmath.Reader, bits)
}

// EncryptPair jointly encrypts plaintextA and plaintextB under pk and
// returns the serialized artifact. Either plaintext is recoverable from
// the result with Decrypt, given the private key and a key whose
// selector label matches.
func EncryptPair(plaintextA, plaintextB []byte, pk *paillier.PublicKey, opts EncryptOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	bundle, err := dualstream.EncryptPair(bigmath.Reader, pk, plaintextA, plaintextB, dualstream.Options{
		ChunkSize:               chunkSize,
		UseIndistinguishability: opts.UseIndistinguishability,
		NoiseScale:              noiseDenominator(opts.NoiseScale),
		RedundancyFactor:        opts.RedundancyFactor,
	})
	if err != nil {
		return nil, err
	}

	return artifact.Encode(bundle)
}

// Decrypt parses artifactBytes, maps key through the stream selector,
// and returns the plaintext of the selected stream. A key selecting the
// other label returns the other plaintext with no error; callers cannot
// distinguish the two cases from this function's behavior.
func Decrypt(artifactBytes, key []byte, sk *paillier.PrivateKey) ([]byte, error) {
	bundle, err := artifact.Decode(artifactBytes)
	if err != nil {
		return nil, err
	}
	return dualstream.Decrypt(bundle.PublicKey, sk, bundle, key)
}

// DecryptExplicit bypasses the selector and extracts the named label's
// stream directly. For tests and recovery tooling; production callers
// must not expose it.
func DecryptExplicit(artifactBytes []byte, label selector.Label, sk *paillier.PrivateKey) ([]byte, error) {
	bundle, err := artifact.Decode(artifactBytes)
	if err != nil {
		return nil, err
	}
	return dualstream.DecryptLabel(bundle.PublicKey, sk, bundle, label)
}

// noiseDenominator converts the caller-facing fractional noise scale
// into the denominator the wrapper consumes: scale 1 keeps the default
// bound n/10^4, smaller scales shrink the bound proportionally.
func noiseDenominator(scale float64) int {
	if scale <= 0 || scale > 1 {
		return indist.DefaultNoiseScale
	}
	return int(float64(indist.DefaultNoiseScale) / scale)
}
