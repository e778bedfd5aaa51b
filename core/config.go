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
)

type Config struct {
	// ProgramID is the identity every factory address is derived under.
	ProgramID common.Address
	// AllowZeroInitialSupply lets CreateToken skip the initial mint when the
	// requested supply is zero. When false a zero supply is ErrInvalidAmount.
	AllowZeroInitialSupply bool
	// HookEnforcesTransferPause makes the transfer hook reject transfers of a
	// paused asset as well.
	HookEnforcesTransferPause bool
	// CommitEveryOperation flushes state to the database after each
	// successful operation. Otherwise changes stay in memory until Commit.
	CommitEveryOperation bool
}

func DefaultConfig() Config {
	return Config{
		ProgramID:                 DefaultProgramID,
		AllowZeroInitialSupply:    true,
		HookEnforcesTransferPause: false,
		CommitEveryOperation:      true,
	}
}
