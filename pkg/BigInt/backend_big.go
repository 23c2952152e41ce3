// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

//go:build !gmp

package BigInt

import "math/big"

// backendInt is the arbitrary-precision integer every Nat is stored in.
type backendInt = big.Int

// Backend names the integer implementation compiled into this binary.
const Backend = "math/big"
