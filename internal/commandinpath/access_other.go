// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package commandinpath

import "github.com/spf13/afero"

func osAccess(path string) error {
	return ModeAccess(afero.NewOsFs(), path)
}
