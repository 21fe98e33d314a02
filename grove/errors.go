// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package grove

import "github.com/pkg/errors"

var (
	// ErrPathNotFound is returned when a tree on the requested path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrPathKeyNotFound is returned when the path exists but holds no element for the key.
	ErrPathKeyNotFound = errors.New("path key not found")
	// ErrNotTree is returned when an element on a path is an item rather than a tree.
	ErrNotTree = errors.New("element is not a tree")
	// ErrAlreadyExists is returned when an empty tree is inserted over an existing element.
	ErrAlreadyExists = errors.New("element already exists")
	// ErrEmptyBatch is returned when an empty batch is applied for real.
	ErrEmptyBatch = errors.New("batch is empty")
	// ErrTransactionDone is returned when a committed or rolled back transaction is used.
	ErrTransactionDone = errors.New("transaction already finished")
	// ErrCorruptedElement is returned when stored bytes do not decode into an element.
	ErrCorruptedElement = errors.New("corrupted element")
)

// IsPathNotFound reports whether err is caused by a missing path.
func IsPathNotFound(err error) bool {
	return errors.Is(err, ErrPathNotFound)
}

// IsKeyNotFound reports whether err is caused by a missing key on an existing path.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrPathKeyNotFound)
}

// IsNotFound reports whether err is either kind of absence.
func IsNotFound(err error) bool {
	return IsPathNotFound(err) || IsKeyNotFound(err)
}
