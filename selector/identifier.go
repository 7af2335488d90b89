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

package selector

import "crypto/sha256"

// DeriveKeyIdentifier returns an 8-byte identifier for key (SHA-256 of
// the key, first 8 bytes), for diagnostics where echoing the raw key
// would be unsafe. It plays no part in the selection decision itself.
func DeriveKeyIdentifier(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:8]
}
