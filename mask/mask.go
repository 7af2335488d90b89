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

// Package mask implements the keyed, homomorphism-preserving affine
// transform: deriving per-label (alpha, beta) parameters from a public
// seed, and applying/removing them on ciphertexts using only the public
// key. A masked ciphertext of m decrypts to alpha*m + beta mod n.
package mask

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/hkdf"

	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/paillier"
	"github.com/pacific-system/homomask/sample"
)

// K is the number of (alpha, beta) pairs derived per label, cycled over
// ciphertext position by index modulo K.
const K = 4

// Parameters holds one label's affine mask material.
type Parameters struct {
	Additive       data.Vector // beta_i, len K
	Multiplicative data.Vector // alpha_i, len K, each coprime with N
}

// Derive computes the affine parameters for label under seed and modulus
// n. The same (seed, label, n) always derives the same parameters; this
// is what lets a decryptor remove the mask without the parameters ever
// being stored.
func Derive(seed [32]byte, label string, n *big.Int) (*Parameters, error) {
	addKey, err := labelKey(seed, label, "add")
	if err != nil {
		return nil, err
	}
	mulKey, err := labelKey(seed, label, "mul")
	if err != nil {
		return nil, err
	}

	additive, err := data.NewRandomDetVector(K, n, addKey)
	if err != nil {
		return nil, err
	}

	multiplicative := make(data.Vector, K)
	for i := 0; i < K; i++ {
		mulSampler := sample.NewUniformDetWithNonce(n, mulKey, nonceFor(i))
		for {
			alpha := mulSampler.Sample()
			if alpha.Sign() != 0 && bigmath.IsCoprime(alpha, n) {
				multiplicative[i] = alpha
				break
			}
		}
	}

	return &Parameters{Additive: additive, Multiplicative: multiplicative}, nil
}

// labelKey expands seed into a 32-byte salsa20 key scoped to (label, tag)
// via HKDF, so the "add" and "mul" streams for the same label are
// cryptographically independent of one another.
func labelKey(seed [32]byte, label, tag string) (*[32]byte, error) {
	info := []byte("homomask-mask:" + label + ":" + tag)
	kdf := hkdf.New(sha256.New, seed[:], nil, info)

	var key [32]byte
	if _, err := kdf.Read(key[:]); err != nil {
		return nil, err
	}
	return &key, nil
}

func nonceFor(index int) [8]byte {
	var nonce [8]byte
	nonce[0] = byte(index)
	return nonce
}

// Apply masks each ciphertext c at position j (i = j mod K) into
// c' decrypting to (alpha_i * m + beta_i) mod n, using only pk.
func Apply(pk *paillier.PublicKey, ciphertexts data.Vector, params *Parameters) data.Vector {
	out := make(data.Vector, len(ciphertexts))
	for j, c := range ciphertexts {
		i := j % K
		scaled := paillier.MultiplyConstant(pk, c, params.Multiplicative[i])
		out[j] = paillier.AddConstant(pk, scaled, params.Additive[i])
	}
	return out
}

// Remove inverts Apply: for each masked ciphertext at position j
// (i = j mod K), it computes alpha_i^-1 mod n and recovers the
// ciphertext of the original m. Fails with errs.ErrMaskRemovalError if
// alpha_i is not invertible mod n, which cannot happen for parameters
// produced by Derive.
func Remove(pk *paillier.PublicKey, masked data.Vector, params *Parameters) (data.Vector, error) {
	invCache := make([]*big.Int, K)

	out := make(data.Vector, len(masked))
	for j, c := range masked {
		i := j % K

		inv := invCache[i]
		if inv == nil {
			var err error
			inv, err = bigmath.ModInverse(params.Multiplicative[i], pk.N)
			if err != nil {
				return nil, errs.ErrMaskRemovalError
			}
			invCache[i] = inv
		}

		negBeta := new(big.Int).Neg(params.Additive[i])
		shifted := paillier.AddConstant(pk, c, negBeta)
		out[j] = paillier.MultiplyConstant(pk, shifted, inv)
	}
	return out, nil
}
