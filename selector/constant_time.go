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

import "crypto/subtle"

// Equal compares two labels in constant time. Callers that branch on a
// selected label in a way an adversary can observe should use this
// instead of ==.
func Equal(a, b Label) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
