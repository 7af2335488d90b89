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
)

// Reader is the process-wide CSPRNG used when a caller does not inject
// its own randomness source. Key generation, encryption, and the
// indistinguishability layer all take an io.Reader explicitly; this is
// the default they are handed.
var Reader io.Reader = rand.Reader
