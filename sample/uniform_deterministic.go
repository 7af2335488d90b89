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

package sample

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/salsa20"
)

// UniformDet deterministically samples values from [0, max) using a
// salsa20-family (XSalsa20) keystream seeded by key and an 8-byte nonce. The same
// (key, nonce) pair always reproduces the same sequence of samples,
// which is what lets the mask generator and the indistinguishability
// layer's shuffle rebuild identical pseudorandom material from a public
// seed at decryption time.
type UniformDet struct {
	key     *[32]byte
	nonce   [8]byte
	max     *big.Int
	maxBits int
	counter uint64
}

// NewUniformDet returns a sampler over [0, max) keyed by key, using the
// all-zero nonce.
func NewUniformDet(max *big.Int, key *[32]byte) *UniformDet {
	return NewUniformDetWithNonce(max, key, [8]byte{})
}

// NewUniformDetWithNonce returns a sampler over [0, max) keyed by key and
// nonce. Distinct nonces under the same key produce independent streams,
// used to derive per-label, per-index mask parameters from one seed.
func NewUniformDetWithNonce(max *big.Int, key *[32]byte, nonce [8]byte) *UniformDet {
	maxBits := new(big.Int).Sub(max, big.NewInt(1)).BitLen()
	return &UniformDet{
		key:     key,
		nonce:   nonce,
		max:     max,
		maxBits: maxBits,
	}
}

// Sample draws the next value in [0, max) from the keystream, rejecting
// and re-drawing whenever the raw bytes land outside [0, max). Each draw
// uses XSalsa20 with a 24-byte nonce holding the sampler's nonce and an
// internal draw counter, so no draw of one (key, nonce) stream repeats a
// draw of another.
func (u *UniformDet) Sample() *big.Int {
	maxBytes := (u.maxBits / 8) + 1
	over := uint(8 - (u.maxBits % 8))
	if over == 8 {
		maxBytes -= 1
		over = 0
	}

	for {
		in := make([]byte, maxBytes)
		out := make([]byte, maxBytes)

		var nonce [24]byte
		copy(nonce[:8], u.nonce[:])
		binary.LittleEndian.PutUint64(nonce[8:16], u.counter)
		u.counter++

		salsa20.XORKeyStream(out, in, nonce[:], u.key)
		out[0] >>= over

		ret := new(big.Int).SetBytes(out)
		if ret.Cmp(u.max) < 0 {
			return ret
		}
	}
}
