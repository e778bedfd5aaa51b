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
package events

import (
	"github.com/annchain/tokengate/common"
	"github.com/annchain/tokengate/eventbus"
)

const (
	FactoryCreatedEventType eventbus.EventType = iota + 1
	TokenCreatedEventType
	WhitelistUpdatedEventType
	SupplyChangedEventType
	PauseToggledEventType
	AuthorityTransferredEventType
	TransferApprovedEventType
	TransferRejectedEventType // the hook or a pause rejected a transfer
)

// Names is the wire name of every event type, used by the event logger and
// websocket subscriptions.
var Names = map[eventbus.EventType]string{
	FactoryCreatedEventType:       "factory_created",
	TokenCreatedEventType:         "token_created",
	WhitelistUpdatedEventType:     "whitelist_updated",
	SupplyChangedEventType:        "supply_changed",
	PauseToggledEventType:         "pause_toggled",
	AuthorityTransferredEventType: "authority_transferred",
	TransferApprovedEventType:     "transfer_approved",
	TransferRejectedEventType:     "transfer_rejected",
}

type FactoryCreatedEvent struct {
	Factory   common.Address `json:"factory"`
	Authority common.Address `json:"authority"`
}

func (m *FactoryCreatedEvent) GetEventType() eventbus.EventType {
	return FactoryCreatedEventType
}

type TokenCreatedEvent struct {
	Mint        common.Address `json:"mint"`
	Registry    common.Address `json:"registry"`
	Whitelist   common.Address `json:"whitelist"`
	Creator     common.Address `json:"creator"`
	Sequence    uint64         `json:"sequence"`
	TotalSupply uint64         `json:"total_supply"`
	Decimals    uint8          `json:"decimals"`
	Symbol      string         `json:"symbol"`
}

func (m *TokenCreatedEvent) GetEventType() eventbus.EventType {
	return TokenCreatedEventType
}

type WhitelistUpdatedEvent struct {
	Mint    common.Address   `json:"mint"`
	Added   []common.Address `json:"added,omitempty"`
	Removed []common.Address `json:"removed,omitempty"`
	Size    int              `json:"size"`
}

func (m *WhitelistUpdatedEvent) GetEventType() eventbus.EventType {
	return WhitelistUpdatedEventType
}

type SupplyChangedEvent struct {
	Mint        common.Address `json:"mint"`
	Account     common.Address `json:"account"`
	Delta       uint64         `json:"delta"`
	Burn        bool           `json:"burn"`
	TotalSupply uint64         `json:"total_supply"`
}

func (m *SupplyChangedEvent) GetEventType() eventbus.EventType {
	return SupplyChangedEventType
}

type PauseToggledEvent struct {
	Mint      common.Address `json:"mint"`
	Transfers bool           `json:"transfers"` // false means the minting flag
	Paused    bool           `json:"paused"`
}

func (m *PauseToggledEvent) GetEventType() eventbus.EventType {
	return PauseToggledEventType
}

type AuthorityTransferredEvent struct {
	Mint     common.Address `json:"mint"`
	Previous common.Address `json:"previous"`
	Current  common.Address `json:"current"`
}

func (m *AuthorityTransferredEvent) GetEventType() eventbus.EventType {
	return AuthorityTransferredEventType
}

type TransferApprovedEvent struct {
	Mint      common.Address `json:"mint"`
	From      common.Address `json:"from"`
	To        common.Address `json:"to"`
	RawAmount uint64         `json:"raw_amount"`
}

func (m *TransferApprovedEvent) GetEventType() eventbus.EventType {
	return TransferApprovedEventType
}

type TransferRejectedEvent struct {
	Mint   common.Address `json:"mint"`
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Reason string         `json:"reason"`
}

func (m *TransferRejectedEvent) GetEventType() eventbus.EventType {
	return TransferRejectedEventType
}
