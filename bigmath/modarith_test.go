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

package bigmath_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacific-system/homomask/bigmath"
	"github.com/pacific-system/homomask/errs"
)

func TestModPow(t *testing.T) {
	got := bigmath.ModPow(big.NewInt(4), big.NewInt(13), big.NewInt(497))
	assert.Equal(t, big.NewInt(445), got)
}

func TestModPowModulusOne(t *testing.T) {
	got := bigmath.ModPow(big.NewInt(5), big.NewInt(3), big.NewInt(1))
	assert.Equal(t, big.NewInt(0), got)
}

func TestModPowNegativeExponent(t *testing.T) {
	// 3^-1 mod 7 = 5, so 3^-2 mod 7 = 25 mod 7 = 4.
	got := bigmath.ModPow(big.NewInt(3), big.NewInt(-2), big.NewInt(7))
	assert.Equal(t, big.NewInt(4), got)
}

func TestModInverse(t *testing.T) {
	inv, err := bigmath.ModInverse(big.NewInt(3), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), inv)
}

func TestModInverseNotCoprime(t *testing.T) {
	_, err := bigmath.ModInverse(big.NewInt(4), big.NewInt(8))
	assert.ErrorIs(t, err, errs.ErrNotCoprime)
}

func TestModInverseZeroModulus(t *testing.T) {
	_, err := bigmath.ModInverse(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, errs.ErrInvalidModulus)
}

func TestGCDAndLCM(t *testing.T) {
	assert.Equal(t, big.NewInt(6), bigmath.GCD(big.NewInt(12), big.NewInt(18)))
	assert.Equal(t, big.NewInt(36), bigmath.LCM(big.NewInt(12), big.NewInt(18)))
}

func TestIsCoprime(t *testing.T) {
	assert.True(t, bigmath.IsCoprime(big.NewInt(9), big.NewInt(16)))
	assert.False(t, bigmath.IsCoprime(big.NewInt(9), big.NewInt(12)))
}

func TestRandomBelow(t *testing.T) {
	n := big.NewInt(1000)
	for i := 0; i < 50; i++ {
		v, err := bigmath.RandomBelow(rand.Reader, n)
		require.NoError(t, err)
		assert.True(t, v.Sign() >= 0)
		assert.True(t, v.Cmp(n) < 0)
	}
}

func TestRandomPrime(t *testing.T) {
	p, err := bigmath.RandomPrime(rand.Reader, 128)
	require.NoError(t, err)
	assert.Equal(t, 128, p.BitLen())
	assert.True(t, p.ProbablyPrime(bigmath.MillerRabinRounds))
}
