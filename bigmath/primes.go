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
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/pacific-system/homomask/errs"
)

// MillerRabinRounds is the number of Miller-Rabin witnesses RandomPrime
// checks on top of crypto/rand.Prime's own screening.
const MillerRabinRounds = 40

// RandomBelow draws a uniformly random value in [0, n) from reader.
func RandomBelow(reader io.Reader, n *big.Int) (*big.Int, error) {
	return rand.Int(reader, n)
}

// RandomPrime draws a prime in [2^(bits-1), 2^bits) from reader, verified
// probabilistically prime with MillerRabinRounds witnesses.
func RandomPrime(reader io.Reader, bits int) (*big.Int, error) {
	for {
		p, err := rand.Prime(reader, bits)
		if err != nil {
			return nil, errors.Wrap(errs.ErrKeyGenFailure, err.Error())
		}
		if p.ProbablyPrime(MillerRabinRounds) {
			return p, nil
		}
	}
}
