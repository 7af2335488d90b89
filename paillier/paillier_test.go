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

package paillier_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacific-system/homomask/paillier"
)

func genKeys(t *testing.T) (*paillier.PublicKey, *paillier.PrivateKey) {
	t.Helper()
	pub, priv, err := paillier.GenerateKeypair(rand.Reader, 256)
	require.NoError(t, err)
	return pub, priv
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv := genKeys(t)

	for _, m := range []int64{0, 1, 42, 12345} {
		c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(m))
		require.NoError(t, err)

		got, err := paillier.Decrypt(priv, c)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(m), got)
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	pub, _ := genKeys(t)

	m := big.NewInt(7)
	c1, err := paillier.Encrypt(rand.Reader, pub, m)
	require.NoError(t, err)
	c2, err := paillier.Encrypt(rand.Reader, pub, m)
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2, "two encryptions of the same plaintext should differ")
}

func TestHomomorphicAdd(t *testing.T) {
	pub, priv := genKeys(t)

	c7, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(7))
	require.NoError(t, err)
	c35, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(35))
	require.NoError(t, err)

	sum := paillier.Add(pub, c7, c35)
	got, err := paillier.Decrypt(priv, sum)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), got)
}

func TestAddConstant(t *testing.T) {
	pub, priv := genKeys(t)

	c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(10))
	require.NoError(t, err)

	shifted := paillier.AddConstant(pub, c, big.NewInt(5))
	got, err := paillier.Decrypt(priv, shifted)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(15), got)
}

func TestMultiplyConstant(t *testing.T) {
	pub, priv := genKeys(t)

	c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(6))
	require.NoError(t, err)

	scaled := paillier.MultiplyConstant(pub, c, big.NewInt(7))
	got, err := paillier.Decrypt(priv, scaled)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), got)
}

func TestRandomize(t *testing.T) {
	pub, priv := genKeys(t)

	c, err := paillier.Encrypt(rand.Reader, pub, big.NewInt(99))
	require.NoError(t, err)

	randomized, err := paillier.Randomize(rand.Reader, pub, c)
	require.NoError(t, err)
	assert.NotEqual(t, c, randomized)

	got, err := paillier.Decrypt(priv, randomized)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(99), got)
}

func TestDecryptRejectsOutOfRangeCiphertext(t *testing.T) {
	_, priv := genKeys(t)

	nSquare := new(big.Int).Mul(priv.N, priv.N)
	tooBig := new(big.Int).Add(nSquare, big.NewInt(1))

	_, err := paillier.Decrypt(priv, tooBig)
	assert.Error(t, err)
}

func TestPublicKeyOf(t *testing.T) {
	pub, priv := genKeys(t)
	reconstructed := paillier.PublicKeyOf(priv)
	assert.Equal(t, pub.N, reconstructed.N)
	assert.Equal(t, pub.G, reconstructed.G)
}
