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

package paillier

import (
	"io"
	"math/big"

	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/errs"
)

var one = big.NewInt(1)

// Encrypt produces a fresh, statistically independent ciphertext for m
// under pk. Precondition: 0 <= m < pk.N.
func Encrypt(reader io.Reader, pk *PublicKey, m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, errs.ErrInvalidCiphertext
	}

	r, err := randomCoprime(reader, pk.N)
	if err != nil {
		return nil, err
	}

	gm := bigmath.ModPow(pk.G, m, pk.NSquare)
	rn := bigmath.ModPow(r, pk.N, pk.NSquare)

	c := new(big.Int).Mul(gm, rn)
	c.Mod(c, pk.NSquare)
	return c, nil
}

// Decrypt recovers the plaintext m = L(c^lambda mod n^2) * mu mod n.
// c must lie in [0, n^2); an out-of-range ciphertext fails with
// errs.ErrInvalidCiphertext rather than silently reducing mod n^2.
func Decrypt(sk *PrivateKey, c *big.Int) (*big.Int, error) {
	nSquare := new(big.Int).Mul(sk.N, sk.N)
	if c.Sign() < 0 || c.Cmp(nSquare) >= 0 {
		return nil, errs.ErrInvalidCiphertext
	}

	x := bigmath.ModPow(c, sk.Lambda, nSquare)
	l := carmichaelL(x, sk.N)

	m := new(big.Int).Mul(l, sk.Mu)
	m.Mod(m, sk.N)
	return m, nil
}

// Add returns a ciphertext decrypting to (m1 + m2) mod n, given
// ciphertexts of m1 and m2.
func Add(pk *PublicKey, c1, c2 *big.Int) *big.Int {
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.NSquare)
}

// AddConstant returns a ciphertext decrypting to (m + k) mod n, given a
// ciphertext of m and a plaintext constant k (k may be negative).
func AddConstant(pk *PublicKey, c, k *big.Int) *big.Int {
	gk := bigmath.ModPow(pk.G, k, pk.NSquare)
	out := new(big.Int).Mul(c, gk)
	return out.Mod(out, pk.NSquare)
}

// MultiplyConstant returns a ciphertext decrypting to (k * m) mod n, given
// a ciphertext of m and a plaintext scalar k.
func MultiplyConstant(pk *PublicKey, c, k *big.Int) *big.Int {
	return bigmath.ModPow(c, k, pk.NSquare)
}

// Randomize returns a fresh ciphertext for the same plaintext as c, drawn
// by multiplying in a fresh r^n term.
func Randomize(reader io.Reader, pk *PublicKey, c *big.Int) (*big.Int, error) {
	r, err := randomCoprime(reader, pk.N)
	if err != nil {
		return nil, err
	}

	rn := bigmath.ModPow(r, pk.N, pk.NSquare)
	out := new(big.Int).Mul(c, rn)
	return out.Mod(out, pk.NSquare), nil
}

// randomCoprime draws r in [1, n) uniformly, rejecting (and redrawing)
// the astronomically rare case that gcd(r, n) != 1.
func randomCoprime(reader io.Reader, n *big.Int) (*big.Int, error) {
	nMinus1 := new(big.Int).Sub(n, one)
	for {
		r, err := bigmath.RandomBelow(reader, nMinus1)
		if err != nil {
			return nil, err
		}
		r.Add(r, one)

		if bigmath.IsCoprime(r, n) {
			return r, nil
		}
	}
}
