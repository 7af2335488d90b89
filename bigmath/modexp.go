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

// Package bigmath provides the arbitrary-precision modular arithmetic
// primitives the rest of the scheme is built from: modular exponentiation,
// modular inverse, gcd/lcm, and CSPRNG-backed prime and uniform sampling.
package bigmath

import "math/big"

// ModPow calculates base^exp mod modulus in Z_modulus*, including for
// negative exponents (where it inverts the positive-exponent result).
// A modulus of 1 yields 0, matching math/big.Int.Exp's own convention.
func ModPow(base, exp, modulus *big.Int) *big.Int {
	ret := new(big.Int)
	if exp.Sign() == -1 {
		expNeg := new(big.Int).Neg(exp)
		ret.Exp(base, expNeg, modulus)
		ret.ModInverse(ret, modulus)
	} else {
		ret.Exp(base, exp, modulus)
	}

	return ret
}
