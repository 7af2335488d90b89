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

// Package keygen generates the prime material consumed by Paillier key
// generation.
package keygen

import (
	"io"
	"math/big"

	"github.com/pacific-system/homomask/bigmath"
)

// GeneratePaillierPrimes draws two distinct primes of bitLen bits each,
// resampling q whenever it collides with p.
func GeneratePaillierPrimes(reader io.Reader, bitLen int) (p, q *big.Int, err error) {
	p, err = bigmath.RandomPrime(reader, bitLen)
	if err != nil {
		return nil, nil, err
	}

	for {
		q, err = bigmath.RandomPrime(reader, bitLen)
		if err != nil {
			return nil, nil, err
		}
		if q.Cmp(p) != 0 {
			return p, q, nil
		}
	}
}
