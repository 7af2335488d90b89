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

package bigmath

import (
	"math/big"

	"github.com/pacific-system/homomask/errs"
)

// ModInverse returns a^-1 mod m via the extended Euclidean algorithm.
// It fails with errs.ErrNotCoprime when gcd(a, m) != 1, and with
// errs.ErrInvalidModulus when m <= 0.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, errs.ErrInvalidModulus
	}

	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, errs.ErrNotCoprime
	}

	return inv, nil
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// LCM returns the least common multiple of a and b.
func LCM(a, b *big.Int) *big.Int {
	gcd := GCD(a, b)
	lcm := new(big.Int).Div(a, gcd)
	lcm.Mul(lcm, b)
	return new(big.Int).Abs(lcm)
}

// IsCoprime reports whether gcd(a, m) == 1.
func IsCoprime(a, m *big.Int) bool {
	return GCD(a, m).Cmp(big.NewInt(1)) == 0
}
