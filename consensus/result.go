// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package consensus

// ValidationResult carries data along with the consensus errors met while producing it.
type ValidationResult[T any] struct {
	Data   T
	Errors []*Error
}

// SimpleValidationResult is a result without data.
type SimpleValidationResult = ValidationResult[struct{}]

// NewResult creates a valid result holding data.
func NewResult[T any](data T) *ValidationResult[T] {
	return &ValidationResult[T]{Data: data}
}

// NewSimpleResult creates a result holding errs. It is valid if errs is empty.
func NewSimpleResult(errs ...*Error) *SimpleValidationResult {
	return &SimpleValidationResult{Errors: errs}
}

// IsValid returns whether no error was recorded.
func (r *ValidationResult[T]) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records an error.
func (r *ValidationResult[T]) AddError(err *Error) {
	r.Errors = append(r.Errors, err)
}

// AddErrors records errors.
func (r *ValidationResult[T]) AddErrors(errs ...*Error) {
	r.Errors = append(r.Errors, errs...)
}

// Merge records the errors of other.
func Merge[T, U any](r *ValidationResult[T], other *ValidationResult[U]) {
	r.AddErrors(other.Errors...)
}
