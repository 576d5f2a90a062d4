// Copyright 2026 Simple Neural Network Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim exposes the mini-batch parameter-update rules for callers
// composing their own training loops from the engine's primitives.
package optim

import "github.com/manuelsawade/simple-neuralnetwork/internal/optim"

// SGD applies one mini-batch gradient-descent step with L2 weight decay.
type SGD = optim.SGD
