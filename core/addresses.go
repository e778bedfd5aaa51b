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
package core

import (
	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
)

// Derivation tags. Each record lives at DeriveAddress(programID, tag, keys...).
const (
	TagFactory           = "factory"
	TagMint              = "mint"
	TagToken             = "token"
	TagWhitelist         = "whitelist"
	TagAsset             = "asset"
	TagMintAuthority     = "mint-authority"
	TagExtraAccountMetas = "extra-account-metas"
)

// DefaultProgramID is the identity the factory derives its addresses under.
var DefaultProgramID = crypto.DeriveAddress(common.Address{}, []byte("tokengate"))

// AssetAddresses are the addresses pinned by (creator, sequence) at creation.
type AssetAddresses struct {
	Mint              common.Address
	Registry          common.Address
	Whitelist         common.Address
	Index             common.Address
	MintingDelegate   common.Address
	ExtraAccountMetas common.Address
}

func FactoryAddress(programID common.Address, authority common.Address) common.Address {
	return crypto.DeriveAddress(programID, []byte(TagFactory), authority.ToBytes())
}

func DeriveAssetAddresses(programID common.Address, creator common.Address, seq uint64) AssetAddresses {
	seqSeed := crypto.SequenceSeed(seq)
	mint := crypto.DeriveAddress(programID, []byte(TagMint), creator.ToBytes(), seqSeed)
	return AssetAddresses{
		Mint:              mint,
		Registry:          crypto.DeriveAddress(programID, []byte(TagToken), creator.ToBytes(), seqSeed),
		Whitelist:         WhitelistAddress(programID, creator, seq),
		Index:             AssetIndexAddress(programID, mint),
		MintingDelegate:   MintingDelegateAddress(programID, mint),
		ExtraAccountMetas: ExtraAccountMetasAddress(programID, mint),
	}
}

func WhitelistAddress(programID common.Address, creator common.Address, seq uint64) common.Address {
	return crypto.DeriveAddress(programID, []byte(TagWhitelist), creator.ToBytes(), crypto.SequenceSeed(seq))
}

func AssetIndexAddress(programID common.Address, mint common.Address) common.Address {
	return crypto.DeriveAddress(programID, []byte(TagAsset), mint.ToBytes())
}

func MintingDelegateAddress(programID common.Address, mint common.Address) common.Address {
	return crypto.DeriveAddress(programID, []byte(TagMintAuthority), mint.ToBytes())
}

func ExtraAccountMetasAddress(programID common.Address, mint common.Address) common.Address {
	return crypto.DeriveAddress(programID, []byte(TagExtraAccountMetas), mint.ToBytes())
}
