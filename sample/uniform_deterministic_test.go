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

package sample_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pacific-system/homomask/sample"
)

func TestUniformDetIsDeterministic(t *testing.T) {
	var key [32]byte
	for i := range key {
		key[i] = byte(i * 7)
	}

	max := big.NewInt(1 << 30)

	s1 := sample.NewUniformDet(max, &key)
	s2 := sample.NewUniformDet(max, &key)

	for i := 0; i < 16; i++ {
		assert.Equal(t, s1.Sample(), s2.Sample())
	}
}

func TestUniformDetStaysBelowMax(t *testing.T) {
	var key [32]byte
	key[0] = 0xAB

	max := big.NewInt(1000)
	s := sample.NewUniformDet(max, &key)

	for i := 0; i < 100; i++ {
		v := s.Sample()
		assert.True(t, v.Sign() >= 0)
		assert.True(t, v.Cmp(max) < 0)
	}
}

func TestUniformDetNoncesAreIndependent(t *testing.T) {
	var key [32]byte
	key[31] = 0x01

	max := new(big.Int).Lsh(big.NewInt(1), 128)

	s1 := sample.NewUniformDetWithNonce(max, &key, [8]byte{0x01})
	s2 := sample.NewUniformDetWithNonce(max, &key, [8]byte{0x02})

	assert.NotEqual(t, s1.Sample(), s2.Sample())
}
