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
// Package ledger holds the contracts between the token factory and the
// collaborators it runs against: the fungible asset ledger engine and the
// metadata registrar.
package ledger

import (
	"errors"
	"fmt"

	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/common/crypto"
	"github.com/annchain/tokengate/types"
)

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrMintExists            = errors.New("mint already exists")
	ErrMintNotFound          = errors.New("mint not found")
	ErrAccountExists         = errors.New("holding account already exists")
	ErrAccountNotFound       = errors.New("holding account not found")
	ErrOwnerMismatch         = errors.New("signer does not own the holding account")
	ErrMintAuthorityMismatch = errors.New("signer is not the mint authority")
	ErrMintMismatch          = errors.New("holding accounts belong to different mints")
	ErrMetadataExists        = errors.New("metadata already registered")
	ErrMetadataNotFound      = errors.New("metadata not found")
	ErrSeedIndexOutOfRange   = errors.New("account seed index out of range")
	ErrOverflow              = errors.New("amount overflows")
)

// TransferContext is what the engine knows about a transfer at the moment it
// calls the hook. Amount is in raw units.
type TransferContext struct {
	Source           common.Address
	Mint             common.Address
	Destination      common.Address
	Owner            common.Address
	DestinationOwner common.Address
	Amount           uint64
	// Transferring is the in-flight marker of the source holding account.
	Transferring bool
}

// BasicAccounts returns the four accounts every transfer carries, in the
// order account key seeds refer to them.
func (c TransferContext) BasicAccounts() [types.BasicAccountCount]common.Address {
	return [types.BasicAccountCount]common.Address{c.Source, c.Mint, c.Destination, c.Owner}
}

// AccountInfo is one resolved extra account handed to the hook.
type AccountInfo struct {
	Key        common.Address
	IsSigner   bool
	IsWritable bool
}

// TransferHook is invoked synchronously by the engine before a transfer of a
// hooked mint is finalized. A non-nil error aborts the transfer.
type TransferHook interface {
	ProgramID() common.Address
	// ExtraAccountMetas returns the recipe published for mint.
	ExtraAccountMetas(mint common.Address) (*types.ExtraAccountMetaList, error)
	Execute(ctx TransferContext, extras []AccountInfo) error
}

// Engine is the fungible asset ledger. Signer arguments stand for the
// identity that authorized the call.
type Engine interface {
	CreateMint(mint common.Address, decimals uint8, mintAuthority common.Address, hook TransferHook) error
	CreateHoldingAccount(mint common.Address, owner common.Address) (common.Address, error)
	HoldingAccount(mint common.Address, owner common.Address) (common.Address, bool)
	MintTo(signer common.Address, mint common.Address, dest common.Address, raw uint64) error
	Burn(signer common.Address, mint common.Address, src common.Address, raw uint64) error
	Transfer(signer common.Address, src common.Address, dest common.Address, raw uint64) error
	Balance(account common.Address) (uint64, error)
}

type Metadata struct {
	Mint    common.Address
	Name    string
	Symbol  string
	URI     string
	Mutable bool
}

type MetadataRegistrar interface {
	ProgramID() common.Address
	Register(mint common.Address, name string, symbol string, uri string, mutable bool) error
	Lookup(mint common.Address) (Metadata, error)
}

// Snapshotter is implemented by collaborators that can take part in the
// factory's all-or-nothing operations. DiscardSnapshot releases a snapshot
// once the operation that took it has succeeded.
type Snapshotter interface {
	Snapshot() int
	RevertToSnapshot(id int)
	DiscardSnapshot(id int)
}

// ResolveExtraAccounts derives the address of every meta in list. Account key
// seeds are replaced by the key of the referenced basic account.
func ResolveExtraAccounts(programID common.Address, list *types.ExtraAccountMetaList, basic [types.BasicAccountCount]common.Address) ([]AccountInfo, error) {
	infos := make([]AccountInfo, 0, len(list.Metas))
	for i, meta := range list.Metas {
		seeds := make([][]byte, 0, len(meta.Seeds))
		for _, seed := range meta.Seeds {
			switch seed.Kind {
			case types.SeedLiteral:
				seeds = append(seeds, seed.Data)
			case types.SeedAccountKey:
				if int(seed.Index) >= len(basic) {
					return nil, fmt.Errorf("meta %d: %w: %d", i, ErrSeedIndexOutOfRange, seed.Index)
				}
				seeds = append(seeds, basic[seed.Index].ToBytes())
			default:
				return nil, fmt.Errorf("meta %d: unknown seed kind %d", i, seed.Kind)
			}
		}
		infos = append(infos, AccountInfo{
			Key:        crypto.DeriveAddress(programID, seeds...),
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		})
	}
	return infos, nil
}
