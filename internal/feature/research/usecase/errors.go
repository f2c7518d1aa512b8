// Package usecase はresearchフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrMissingAnalysis is returned when a research query arrives without a
	// market analysis to evaluate candidates against.
	ErrMissingAnalysis = errors.New("market analysis is required")

	// ErrMissingProduct is returned when a research query has no product name.
	ErrMissingProduct = errors.New("product name is required")
)
