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

package homomask

import (
	"encoding/json"
	"math/big"

	pkgerrors "github.com/pkg/errors"

	"github.com/pacific-system/homomask/errs"
	"github.com/pacific-system/homomask/paillier"
)

// Key export documents. Integers travel as decimal strings so no reader
// ever coerces them through a native number type.

type wirePublicKeyFile struct {
	N string `json:"n"`
	G string `json:"g"`
}

type wirePrivateKeyFile struct {
	Lambda string `json:"lambda"`
	Mu     string `json:"mu"`
	P      string `json:"p"`
	Q      string `json:"q"`
	N      string `json:"n"`
}

// EncodePublicKey serializes a public key for export.
func EncodePublicKey(pk *paillier.PublicKey) ([]byte, error) {
	return json.Marshal(wirePublicKeyFile{
		N: pk.N.String(),
		G: pk.G.String(),
	})
}

// DecodePublicKey parses an exported public key document.
func DecodePublicKey(raw []byte) (*paillier.PublicKey, error) {
	var w wirePublicKeyFile
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed public key file")
	}

	n, ok := new(big.Int).SetString(w.N, 10)
	if !ok || n.Sign() <= 0 {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed public key n")
	}
	g, ok := new(big.Int).SetString(w.G, 10)
	if !ok {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed public key g")
	}

	return &paillier.PublicKey{
		N:       n,
		G:       g,
		NSquare: new(big.Int).Mul(n, n),
	}, nil
}

// EncodePrivateKey serializes a private key for export. The result
// contains full key material; it never belongs inside an artifact.
func EncodePrivateKey(sk *paillier.PrivateKey) ([]byte, error) {
	return json.Marshal(wirePrivateKeyFile{
		Lambda: sk.Lambda.String(),
		Mu:     sk.Mu.String(),
		P:      sk.P.String(),
		Q:      sk.Q.String(),
		N:      sk.N.String(),
	})
}

// DecodePrivateKey parses an exported private key document, checking
// that the factors actually multiply to the carried modulus.
func DecodePrivateKey(raw []byte) (*paillier.PrivateKey, error) {
	var w wirePrivateKeyFile
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed private key file")
	}

	fields := []string{w.Lambda, w.Mu, w.P, w.Q, w.N}
	parsed := make([]*big.Int, len(fields))
	for i, s := range fields {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok || v.Sign() <= 0 {
			return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "malformed private key field")
		}
		parsed[i] = v
	}

	sk := &paillier.PrivateKey{
		Lambda: parsed[0],
		Mu:     parsed[1],
		P:      parsed[2],
		Q:      parsed[3],
		N:      parsed[4],
	}

	if new(big.Int).Mul(sk.P, sk.Q).Cmp(sk.N) != 0 {
		return nil, pkgerrors.Wrap(errs.ErrInvalidArtifact, "private key factors do not match modulus")
	}
	return sk, nil
}
