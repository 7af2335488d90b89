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

package mask

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// KDFIterations is the PBKDF2 round count used by SeedFromPassphrase.
const KDFIterations = 100000

// SeedFromPassphrase derives a 32-byte mask seed from a passphrase-like
// key and salt via PBKDF2-HMAC-SHA256. It is a pure helper with no effect
// on the artifact format: pair encryption always draws a fresh random
// seed; this exists only for callers that want a reproducible seed from
// low-entropy input.
func SeedFromPassphrase(passphrase, salt []byte) [32]byte {
	derived := pbkdf2.Key(passphrase, salt, KDFIterations, 32, sha256.New)
	var seed [32]byte
	copy(seed[:], derived)
	return seed
}
