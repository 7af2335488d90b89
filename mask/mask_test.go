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

package mask_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacific-system/homomask/mask"
	"github.com/pacific-system/homomask/paillier"
)

func TestApplyRemoveRoundTrip(t *testing.T) {
	pub, priv, err := paillier.GenerateKeypair(rand.Reader, 256)
	require.NoError(t, err)

	var seed [32]byte
	copy(seed[:], []byte("a deterministic test seed......"))

	params, err := mask.Derive(seed, "A", pub.N)
	require.NoError(t, err)

	plaintexts := []int64{0, 1, 100, 999}
	ciphertexts := make([]*big.Int, len(plaintexts))
	for i, m := range plaintexts {
		c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(m))
		require.NoError(t, err)
		ciphertexts[i] = c
	}

	masked := mask.Apply(pub, ciphertexts, params)
	unmasked, err := mask.Remove(pub, masked, params)
	require.NoError(t, err)

	for i, c := range unmasked {
		got, err := paillier.Decrypt(priv, c)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(plaintexts[i]), got)
	}
}

func TestApplyChangesPlaintextImage(t *testing.T) {
	pub, priv, err := paillier.GenerateKeypair(rand.Reader, 256)
	require.NoError(t, err)

	var seed [32]byte
	copy(seed[:], []byte{0x00})

	params, err := mask.Derive(seed, "A", pub.N)
	require.NoError(t, err)

	c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(100))
	require.NoError(t, err)

	masked := mask.Apply(pub, []*big.Int{c}, params)
	got, err := paillier.Decrypt(priv, masked[0])
	require.NoError(t, err)

	want := new(big.Int).Mul(params.Multiplicative[0], big.NewInt(100))
	want.Add(want, params.Additive[0])
	want.Mod(want, pub.N)

	assert.Equal(t, want, got)
}

func TestDeriveIsDeterministic(t *testing.T) {
	n := big.NewInt(0).Exp(big.NewInt(2), big.NewInt(64), nil)

	var seed [32]byte
	copy(seed[:], []byte("another test seed..............."))

	p1, err := mask.Derive(seed, "B", n)
	require.NoError(t, err)
	p2, err := mask.Derive(seed, "B", n)
	require.NoError(t, err)

	assert.Equal(t, p1.Additive.String(), p2.Additive.String())
	assert.Equal(t, p1.Multiplicative.String(), p2.Multiplicative.String())
}

func TestDeriveDiffersByLabel(t *testing.T) {
	n := big.NewInt(0).Exp(big.NewInt(2), big.NewInt(64), nil)

	var seed [32]byte
	copy(seed[:], []byte("yet another test seed..........."))

	pA, err := mask.Derive(seed, "A", n)
	require.NoError(t, err)
	pB, err := mask.Derive(seed, "B", n)
	require.NoError(t, err)

	assert.NotEqual(t, pA.Additive.String(), pB.Additive.String())
}

func TestMultiplicativeParamsAreUnitsModN(t *testing.T) {
	n := big.NewInt(0).Exp(big.NewInt(2), big.NewInt(64), nil)

	var seed [32]byte
	copy(seed[:], []byte("coprimality test seed..........."))

	params, err := mask.Derive(seed, "A", n)
	require.NoError(t, err)

	for _, alpha := range params.Multiplicative {
		g := new(big.Int).GCD(nil, nil, alpha, n)
		assert.Equal(t, big.NewInt(1), g)
	}
}

func TestSeedFromPassphraseIsDeterministic(t *testing.T) {
	s1 := mask.SeedFromPassphrase([]byte("correct horse battery staple"), []byte("salt"))
	s2 := mask.SeedFromPassphrase([]byte("correct horse battery staple"), []byte("salt"))
	assert.Equal(t, s1, s2)

	s3 := mask.SeedFromPassphrase([]byte("correct horse battery staple"), []byte("other-salt"))
	assert.NotEqual(t, s1, s3)
}
