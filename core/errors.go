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

// Error is a failure kind of a factory operation. Every failing operation
// returns exactly one of the sentinels below, possibly wrapped.
type Error struct {
	Code string
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(code string, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

var (
	ErrAlreadyExists              = newError("AlreadyExists", "account already exists")
	ErrNameTooLong                = newError("NameTooLong", "name too long")
	ErrSymbolTooLong              = newError("SymbolTooLong", "symbol too long")
	ErrUriTooLong                 = newError("UriTooLong", "uri too long")
	ErrInvalidAmount              = newError("InvalidAmount", "invalid amount")
	ErrUnauthorized               = newError("Unauthorized", "caller is not the controlling authority")
	ErrMintingPaused              = newError("MintingPaused", "minting is paused")
	ErrTransfersPaused            = newError("TransfersPaused", "transfers are paused")
	ErrAddressNotWhitelisted      = newError("AddressNotWhitelisted", "destination owner is not whitelisted")
	ErrIsNotCurrentlyTransferring = newError("IsNotCurrentlyTransferring", "hook invoked outside a transfer")

	ErrFactoryNotFound      = newError("FactoryNotFound", "factory not found")
	ErrAssetNotFound        = newError("AssetNotFound", "asset not found")
	ErrExtraAccountMismatch = newError("ExtraAccountMismatch", "extra accounts do not match the published recipe")
)

// Field limits, in bytes.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxUriLength    = 200
)
