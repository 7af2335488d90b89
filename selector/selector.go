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

// Package selector implements the key-to-stream-label mapping: a
// deterministic, roughly balanced function from raw key bytes to one of
// two neutral labels, A or B. The artifact never records which label a
// key selects; that binding exists only in the operator's head, which is
// what makes the honeypot pattern work even under full source disclosure.
package selector

import (
	"io"
	"math/bits"

	"github.com/zeebo/blake3"
)

// Label identifies one of the two ciphertext streams. Neither label
// carries operational meaning inside this package; the caller assigns
// that meaning.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
)

// normalizedKeyLen is the canonical key length the predicates hash over.
// Shorter keys are zero-padded, longer keys are truncated.
const normalizedKeyLen = 16

// Select deterministically maps key to LabelA or LabelB. At least 3 of 5
// independent predicates over H(key) (and H(H(key))) must hold for the
// result to be LabelA.
func Select(key []byte) Label {
	h := hash256(normalizeKey(key))
	hh := hash256(h[:])

	votes := 0
	if bitRatioExceeds(h[:], 0.48) {
		votes++
	}
	if h[len(h)-1] < 128 {
		votes++
	}
	if h[len(h)-2] > 0x7F {
		votes++
	}
	if hh[0]%2 == 0 {
		votes++
	}
	if h[16]%2 == 0 {
		votes++
	}

	if votes >= 3 {
		return LabelA
	}
	return LabelB
}

// normalizeKey pads a short key with zeros or truncates a long one to
// normalizedKeyLen bytes, leaving the input slice untouched.
func normalizeKey(key []byte) []byte {
	out := make([]byte, normalizedKeyLen)
	copy(out, key)
	return out
}

// hash256 computes a 256-bit BLAKE3 digest via the streaming Hasher API.
func hash256(b []byte) [32]byte {
	h := blake3.New()
	h.Write(b)

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func bitRatioExceeds(b []byte, threshold float64) bool {
	var ones int
	for _, v := range b {
		ones += bits.OnesCount8(v)
	}
	ratio := float64(ones) / float64(len(b)*8)
	return ratio > threshold
}

// GenerateKeyForLabel draws random 16-byte keys from reader until one
// selects the requested label, and returns it. Convenient for an
// operator provisioning a matched pair of keys known in advance to
// select opposite labels, without brute-forcing by hand.
func GenerateKeyForLabel(reader io.Reader, label Label) ([]byte, error) {
	for {
		key := make([]byte, normalizedKeyLen)
		if _, err := io.ReadFull(reader, key); err != nil {
			return nil, err
		}
		if Select(key) == label {
			return key, nil
		}
	}
}

// VerifyDistinctLabels reports whether keyA and keyB are different keys
// that select different labels, a sanity check for a provisioned key
// pair.
func VerifyDistinctLabels(keyA, keyB []byte) bool {
	if string(keyA) == string(keyB) {
		return false
	}
	return Select(keyA) != Select(keyB)
}
