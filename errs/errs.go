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

// Package errs defines the error taxonomy shared by every component of the
// masking scheme. Each sentinel names a kind, not a type: components wrap a
// sentinel with github.com/pkg/errors to attach a diagnostic tag without
// leaking key material, seeds, or plaintext into the message.
package errs

import "errors"

var malformedStr = "is not of the proper form"

// ErrInvalidArtifact is returned when the codec detects a malformed or
// unsupported artifact (bad format_tag/version, mismatched stream lengths,
// a ciphertext or seed that fails to parse).
var ErrInvalidArtifact = errors.New("artifact " + malformedStr)

// ErrInvalidCiphertext is returned when a ciphertext value lies outside
// [0, n^2).
var ErrInvalidCiphertext = errors.New("ciphertext " + malformedStr)

// ErrMaskRemovalError is returned when a mask's multiplicative parameter is
// not invertible modulo n. This should never occur for an artifact produced
// by this package's own encryptor.
var ErrMaskRemovalError = errors.New("mask parameter " + malformedStr)

// ErrDecryptionError is returned when Paillier decryption fails
// algebraically, typically because the private key does not correspond to
// the public key under which the ciphertext was produced.
var ErrDecryptionError = errors.New("decryption failed")

// ErrKeyGenFailure is returned when the CSPRNG fails during prime
// generation, or when the requested key bit length is unusable.
var ErrKeyGenFailure = errors.New("key generation failed")

// ErrChunkSizeTooLarge is returned at encryption time when chunk_size * 8
// is not strictly smaller than the bit length of n.
var ErrChunkSizeTooLarge = errors.New("chunk size too large for modulus")

// ErrInvalidOptions is returned at encryption time when an option value
// lies outside its accepted range (noise scale outside [0, 1], redundancy
// factor below 1).
var ErrInvalidOptions = errors.New("encrypt options " + malformedStr)

// ErrNotCoprime signals a value was not coprime with the modulus. Internal
// callers (modinv, encrypt, mask derivation) always catch and retry on this
// error; it must never be surfaced to an external caller.
var ErrNotCoprime = errors.New("value not coprime with modulus")

// ErrInvalidModulus is returned by modular-inverse helpers when asked to
// invert against a zero or negative modulus.
var ErrInvalidModulus = errors.New("invalid modulus")
