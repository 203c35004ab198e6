// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs the commands parsed from one input line.
//
// A batch runs in two phases. The launch phase walks the commands in order,
// starting every external program without waiting for it and running builtins
// inline. The wait phase walks them again in the same order, waiting for each
// child and reporting every failed command exactly once. External programs in
// a batch therefore run concurrently, while errors are reported in a stable
// order.
package runbatch
