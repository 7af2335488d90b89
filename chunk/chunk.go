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

// Package chunk splits a byte sequence into fixed-size big-endian integer
// chunks suitable for individual Paillier encryption, and reassembles
// them on the way back out.
package chunk

import (
	"math/big"

	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/errs"
)

// MaxSize returns the largest chunk size (in bytes) usable with modulus
// n: the largest size whose chunk values all stay strictly below n.
func MaxSize(n *big.Int) int {
	return (n.BitLen() - 1) / 8
}

// Validate reports errs.ErrChunkSizeTooLarge if size is not positive or
// exceeds MaxSize(n), that is, unless size*8 < bits(n).
func Validate(n *big.Int, size int) error {
	if size <= 0 || size*8 >= n.BitLen() {
		return errs.ErrChunkSizeTooLarge
	}
	return nil
}

// Split divides b into ceil(len(b)/size) big-endian integer chunks, the
// final chunk possibly shorter than size bytes.
func Split(b []byte, size int) data.Vector {
	if len(b) == 0 {
		return data.Vector{}
	}

	n := (len(b) + size - 1) / size
	out := make(data.Vector, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if end > len(b) {
			end = len(b)
		}
		out[i] = new(big.Int).SetBytes(b[start:end])
	}
	return out
}

// Reassemble converts each chunk back to big-endian bytes (left-padded
// with zeros) of the width Split cut it at: size bytes, or for a final
// chunk shorter than size, the bytes of originalLen that remain. It
// concatenates them in order and truncates the result to originalLen.
func Reassemble(chunks data.Vector, size int, originalLen int) []byte {
	out := make([]byte, 0, len(chunks)*size)
	for i, c := range chunks {
		width := size
		if rest := originalLen - i*size; rest > 0 && rest < size {
			width = rest
		}
		buf := make([]byte, width)
		c.FillBytes(buf)
		out = append(out, buf...)
	}

	if originalLen < len(out) {
		out = out[:originalLen]
	}
	return out
}
