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

// Package paillier implements the Paillier additively homomorphic
// cryptosystem: key generation, encryption, decryption, and the
// homomorphic add, scalar-multiply, and re-randomize operations.
package paillier

import (
	"io"
	"math/big"

	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/internal/keygen"
)

// PublicKey is the Paillier public key (n, g = n+1). NSquare is a cached
// derived value (n^2), not a separate secret, kept to avoid recomputing it
// on every homomorphic operation.
type PublicKey struct {
	N       *big.Int
	G       *big.Int
	NSquare *big.Int
}

// PrivateKey is the Paillier private key. It must never be serialized
// into an artifact; only the dedicated private-key export format carries
// it.
type PrivateKey struct {
	Lambda *big.Int
	Mu     *big.Int
	P      *big.Int
	Q      *big.Int
	N      *big.Int
}

// GenerateKeypair draws two distinct bits/2-bit primes and derives n,
// lambda, g, and mu, restarting from scratch whenever gcd(lambda, n) != 1
// (astronomically rare for random primes of equal length).
func GenerateKeypair(reader io.Reader, bits int) (*PublicKey, *PrivateKey, error) {
	if bits < 16 || bits%2 != 0 {
		return nil, nil, errs.ErrKeyGenFailure
	}

	for {
		p, q, err := keygen.GeneratePaillierPrimes(reader, bits/2)
		if err != nil {
			return nil, nil, err
		}

		n := new(big.Int).Mul(p, q)
		nSquare := new(big.Int).Mul(n, n)
		g := new(big.Int).Add(n, big.NewInt(1))

		pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
		qMinus1 := new(big.Int).Sub(q, big.NewInt(1))
		lambda := bigmath.LCM(pMinus1, qMinus1)

		if !bigmath.IsCoprime(lambda, n) {
			continue
		}

		gLambda := bigmath.ModPow(g, lambda, nSquare)
		lOfGLambda := carmichaelL(gLambda, n)

		mu, err := bigmath.ModInverse(lOfGLambda, n)
		if err != nil {
			// lambda wasn't actually coprime with n despite the check above;
			// vanishingly unlikely, but restart rather than surface NotCoprime.
			continue
		}

		pub := &PublicKey{N: n, G: g, NSquare: nSquare}
		priv := &PrivateKey{Lambda: lambda, Mu: mu, P: p, Q: q, N: n}
		return pub, priv, nil
	}
}

// carmichaelL computes L(x) = (x-1)/n, the Paillier decryption's
// division step, for x in Z_{n^2}*.
func carmichaelL(x, n *big.Int) *big.Int {
	l := new(big.Int).Sub(x, big.NewInt(1))
	return l.Div(l, n)
}

// PublicKeyOf reconstructs the public key implied by a private key.
func PublicKeyOf(sk *PrivateKey) *PublicKey {
	nSquare := new(big.Int).Mul(sk.N, sk.N)
	g := new(big.Int).Add(sk.N, big.NewInt(1))
	return &PublicKey{N: sk.N, G: g, NSquare: nSquare}
}
