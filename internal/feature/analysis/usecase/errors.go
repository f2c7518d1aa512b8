// Package usecase はanalysisフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrUnparsableAnalysis is returned when the model response does not contain
	// the expected two-section structure.
	ErrUnparsableAnalysis = errors.New("analysis response is missing expected sections")

	// ErrDescriptionTooLong is returned when the product description exceeds
	// MaxDescriptionLength.
	ErrDescriptionTooLong = errors.New("product description is too long")
)
