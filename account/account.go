// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package account

import (
	"fmt"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/common/hexutil"
	"golang.org/x/crypto/ed25519"
)

// Account is an ed25519 identity. Its address is the public key.
type Account struct {
	PrivateKey crypto.PrivateKey
	PublicKey  crypto.PublicKey
	Address    common.Address
}

func fromPrivateKey(signer crypto.Signer, priv crypto.PrivateKey) *Account {
	pub := signer.PubKey(priv)
	return &Account{
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    signer.Address(pub),
	}
}

// NewAccount loads an account from a hex encoded 32 byte seed or 64 byte
// private key.
func NewAccount(privateKeyHex string) (*Account, error) {
	b, err := hexutil.FromHex(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("private key format error: %v", err)
	}
	switch len(b) {
	case ed25519.SeedSize:
		b = ed25519.NewKeyFromSeed(b)
	case ed25519.PrivateKeySize:
	default:
		return nil, fmt.Errorf("private key length mismatch: %d", len(b))
	}
	signer := &crypto.SignerEd25519{}
	return fromPrivateKey(signer, crypto.PrivateKeyFromBytes(signer.GetCryptoType(), b)), nil
}

func RandomAccount() (*Account, error) {
	signer := &crypto.SignerEd25519{}
	_, priv, err := signer.RandomKeyPair()
	if err != nil {
		return nil, err
	}
	return fromPrivateKey(signer, priv), nil
}

func (a *Account) PrivateKeyHex() string {
	return hexutil.ToFormalHex(a.PrivateKey.Bytes)
}

func (a *Account) PublicKeyHex() string {
	return hexutil.ToFormalHex(a.PublicKey.Bytes)
}
