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

// Package dualstream jointly encrypts two plaintext byte sequences into
// one artifact's worth of ciphertext streams, and recovers exactly one of
// them given a key and the private key. Neither EncryptPair nor Decrypt
// ever branches on which plaintext is "authentic"; that distinction
// exists only in the selector's mapping from key to label.
package dualstream

import (
	"io"
	"math/big"

	"github.com/pacific-system/homomask/artifact"
	"github.com/pacific-system/homomask/chunk"
	"github.com/pacific-system/homomask/data"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/indist"
	"github.com/pacific-system/homomask/mask"
	"github.com/pacific-system/homomask/paillier"
	"github.com/pacific-system/homomask/selector"
)

// Options configures EncryptPair.
type Options struct {
	ChunkSize               int
	UseIndistinguishability bool
	NoiseScale              int
	RedundancyFactor        int
}

// DefaultOptions returns a conservative configuration for pk: a chunk
// size computed from the key's modulus, indistinguishability disabled,
// and the indist package's defaults held in reserve.
func DefaultOptions(pk *paillier.PublicKey) Options {
	return Options{
		ChunkSize:               chunk.MaxSize(pk.N),
		UseIndistinguishability: false,
		NoiseScale:              indist.DefaultNoiseScale,
		RedundancyFactor:        indist.DefaultRedundancyFactor,
	}
}

// EncryptPair jointly encrypts plaintextA and plaintextB under pk,
// producing a single artifact.Bundle from which either plaintext can be
// recovered given the matching key and sk.
func EncryptPair(reader io.Reader, pk *paillier.PublicKey, plaintextA, plaintextB []byte, opts Options) (*artifact.Bundle, error) {
	if err := chunk.Validate(pk.N, opts.ChunkSize); err != nil {
		return nil, err
	}

	chunksA := chunk.Split(plaintextA, opts.ChunkSize)
	chunksB := chunk.Split(plaintextB, opts.ChunkSize)

	// Neither stream is ever truly empty: an all-zero placeholder chunk
	// keeps the padding step below simple, and LengthA/LengthB (not the
	// chunk count) govern how many bytes Reassemble ever returns, so a
	// placeholder chunk beyond the real content is never observable.
	if len(chunksA) == 0 {
		chunksA = data.Vector{big.NewInt(0)}
	}
	if len(chunksB) == 0 {
		chunksB = data.Vector{big.NewInt(0)}
	}

	ctA, err := encryptChunks(reader, pk, chunksA)
	if err != nil {
		return nil, err
	}
	ctB, err := encryptChunks(reader, pk, chunksB)
	if err != nil {
		return nil, err
	}

	var seed [32]byte
	if _, err := io.ReadFull(reader, seed[:]); err != nil {
		return nil, err
	}

	paramsA, err := mask.Derive(seed, string(selector.LabelA), pk.N)
	if err != nil {
		return nil, err
	}
	paramsB, err := mask.Derive(seed, string(selector.LabelB), pk.N)
	if err != nil {
		return nil, err
	}

	maskedA := mask.Apply(pk, ctA, paramsA)
	maskedB := mask.Apply(pk, ctB, paramsB)

	maskedA, maskedB = padToEqualLength(maskedA, maskedB)

	bundle := &artifact.Bundle{
		PublicKey:     pk,
		ChunkSize:     opts.ChunkSize,
		LengthA:       len(plaintextA),
		LengthB:       len(plaintextB),
		MaskMetadataA: artifact.MaskMetadata{Label: string(selector.LabelA), Seed: seed},
		MaskMetadataB: artifact.MaskMetadata{Label: string(selector.LabelB), Seed: seed},
	}

	if !opts.UseIndistinguishability {
		bundle.StreamA = maskedA
		bundle.StreamB = maskedB
		return bundle, nil
	}

	combined, meta, err := indist.Wrap(reader, pk, maskedA, maskedB, opts.NoiseScale, opts.RedundancyFactor)
	if err != nil {
		return nil, err
	}
	bundle.CombinedStream = combined
	bundle.PaddedLength = len(maskedA)
	bundle.Indist = meta
	return bundle, nil
}

// Decrypt selects a label from key, recovers that label's stream
// (unwrapping the indistinguishability layer first if present), removes
// its mask, decrypts every chunk, and reassembles the original byte
// sequence. A key that selects the other label yields the other
// plaintext, with no error: that silence is the point of the scheme.
func Decrypt(pk *paillier.PublicKey, sk *paillier.PrivateKey, bundle *artifact.Bundle, key []byte) ([]byte, error) {
	return DecryptLabel(pk, sk, bundle, selector.Select(key))
}

// DecryptLabel recovers the plaintext for an explicitly named label,
// bypassing the selector. For testing and recovery tooling only;
// production callers go through Decrypt.
func DecryptLabel(pk *paillier.PublicKey, sk *paillier.PrivateKey, bundle *artifact.Bundle, label selector.Label) ([]byte, error) {
	if sk.N.Cmp(pk.N) != 0 {
		return nil, errs.ErrDecryptionError
	}

	streamA, streamB, err := resolveStreams(pk, bundle)
	if err != nil {
		return nil, err
	}

	if label == selector.LabelA {
		return finishDecrypt(pk, sk, streamA, bundle.MaskMetadataA, bundle.ChunkSize, bundle.LengthA)
	}
	return finishDecrypt(pk, sk, streamB, bundle.MaskMetadataB, bundle.ChunkSize, bundle.LengthB)
}

// resolveStreams returns the two masked, length-matched ciphertext
// streams, unwrapping the indistinguishability layer first when present.
func resolveStreams(pk *paillier.PublicKey, bundle *artifact.Bundle) (data.Vector, data.Vector, error) {
	if bundle.Indist == nil {
		return bundle.StreamA, bundle.StreamB, nil
	}
	return indist.Unwrap(pk, bundle.CombinedStream, bundle.Indist, bundle.PaddedLength, bundle.PaddedLength)
}

// finishDecrypt removes a label's mask from masked, decrypts every chunk,
// and reassembles the recovered chunks into the original byte sequence.
func finishDecrypt(pk *paillier.PublicKey, sk *paillier.PrivateKey, masked data.Vector, meta artifact.MaskMetadata, chunkSize, originalLen int) ([]byte, error) {
	params, err := mask.Derive(meta.Seed, meta.Label, pk.N)
	if err != nil {
		return nil, err
	}

	ciphertexts, err := mask.Remove(pk, masked, params)
	if err != nil {
		return nil, err
	}

	chunkCount := (originalLen + chunkSize - 1) / chunkSize
	if chunkCount > len(ciphertexts) {
		chunkCount = len(ciphertexts)
	}

	plainChunks := make(data.Vector, chunkCount)
	for i := 0; i < chunkCount; i++ {
		m, err := paillier.Decrypt(sk, ciphertexts[i])
		if err != nil {
			return nil, errs.ErrDecryptionError
		}
		plainChunks[i] = m
	}

	return chunk.Reassemble(plainChunks, chunkSize, originalLen), nil
}

// encryptChunks encrypts every chunk independently under pk.
func encryptChunks(reader io.Reader, pk *paillier.PublicKey, chunks data.Vector) (data.Vector, error) {
	out := make(data.Vector, len(chunks))
	for i, m := range chunks {
		c, err := paillier.Encrypt(reader, pk, m)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// padToEqualLength repeats the shorter masked stream's last ciphertext
// verbatim until both streams match in length. It never truncates
// either stream; both are guaranteed non-empty by the caller.
func padToEqualLength(a, b data.Vector) (data.Vector, data.Vector) {
	for len(a) < len(b) {
		a = append(a, a[len(a)-1])
	}
	for len(b) < len(a) {
		b = append(b, b[len(b)-1])
	}
	return a, b
}
