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

package dualstream_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacific-system/homomask/dualstream"
	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/paillier"
	"github.com/pacific-system/homomask/selector"
)

func genKeys(t *testing.T) (*paillier.PublicKey, *paillier.PrivateKey) {
	t.Helper()
	pub, priv, err := paillier.GenerateKeypair(rand.Reader, 512)
	require.NoError(t, err)
	return pub, priv
}

func testOptions() dualstream.Options {
	return dualstream.Options{ChunkSize: 16, RedundancyFactor: 1}
}

func TestEncryptPairDecryptsBothLabels(t *testing.T) {
	pub, priv := genKeys(t)

	plainA := []byte("the first of the two plaintexts")
	plainB := []byte("and the second one, a bit longer than the first")

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, plainA, plainB, testOptions())
	require.NoError(t, err)

	gotA, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelA)
	require.NoError(t, err)
	assert.Equal(t, plainA, gotA)

	gotB, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelB)
	require.NoError(t, err)
	assert.Equal(t, plainB, gotB)
}

func TestEncryptPairPadsShorterStream(t *testing.T) {
	pub, priv := genKeys(t)

	plainA := []byte("ab")
	plainB := []byte("a plaintext long enough to span several chunks of sixteen bytes")

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, plainA, plainB, testOptions())
	require.NoError(t, err)

	assert.Equal(t, len(bundle.StreamA), len(bundle.StreamB))
	assert.Greater(t, len(bundle.StreamA), 1)

	// Padding repeats the last real ciphertext verbatim.
	last := bundle.StreamA[len(bundle.StreamA)-1]
	assert.Equal(t, bundle.StreamA[0], last)

	gotA, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelA)
	require.NoError(t, err)
	assert.Equal(t, plainA, gotA)
}

func TestEncryptPairEmptyPlaintext(t *testing.T) {
	pub, priv := genKeys(t)

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, nil, []byte("content"), testOptions())
	require.NoError(t, err)

	gotA, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelA)
	require.NoError(t, err)
	assert.Empty(t, gotA)

	gotB, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelB)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), gotB)
}

func TestDecryptFollowsSelector(t *testing.T) {
	pub, priv := genKeys(t)

	plainA := []byte("stream a content")
	plainB := []byte("stream b content")

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, plainA, plainB, testOptions())
	require.NoError(t, err)

	keyA, err := selector.GenerateKeyForLabel(rand.Reader, selector.LabelA)
	require.NoError(t, err)
	keyB, err := selector.GenerateKeyForLabel(rand.Reader, selector.LabelB)
	require.NoError(t, err)

	gotA, err := dualstream.Decrypt(pub, priv, bundle, keyA)
	require.NoError(t, err)
	assert.Equal(t, plainA, gotA)

	gotB, err := dualstream.Decrypt(pub, priv, bundle, keyB)
	require.NoError(t, err)
	assert.Equal(t, plainB, gotB)
}

func TestDecryptWithMismatchedPrivateKey(t *testing.T) {
	pub, _ := genKeys(t)
	_, otherPriv := genKeys(t)

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, []byte("aa"), []byte("bb"), testOptions())
	require.NoError(t, err)

	_, err = dualstream.DecryptLabel(pub, otherPriv, bundle, selector.LabelA)
	assert.ErrorIs(t, err, errs.ErrDecryptionError)
}

func TestEncryptPairRejectsOversizedChunks(t *testing.T) {
	pub, _ := genKeys(t)

	opts := testOptions()
	opts.ChunkSize = 64 // 512 bits, as wide as the modulus

	_, err := dualstream.EncryptPair(rand.Reader, pub, []byte("a"), []byte("b"), opts)
	assert.ErrorIs(t, err, errs.ErrChunkSizeTooLarge)
}

func TestEncryptPairWithIndistinguishability(t *testing.T) {
	pub, priv := genKeys(t)

	plainA := []byte("wrapped stream a")
	plainB := []byte("wrapped stream b, longer so the streams need padding")

	opts := testOptions()
	opts.UseIndistinguishability = true
	opts.RedundancyFactor = 2

	bundle, err := dualstream.EncryptPair(rand.Reader, pub, plainA, plainB, opts)
	require.NoError(t, err)
	require.NotNil(t, bundle.Indist)
	assert.Empty(t, bundle.StreamA)
	assert.Equal(t, bundle.PaddedLength*2*(opts.RedundancyFactor+1), len(bundle.CombinedStream))

	gotA, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelA)
	require.NoError(t, err)
	assert.Equal(t, plainA, gotA)

	gotB, err := dualstream.DecryptLabel(pub, priv, bundle, selector.LabelB)
	require.NoError(t, err)
	assert.Equal(t, plainB, gotB)
}
