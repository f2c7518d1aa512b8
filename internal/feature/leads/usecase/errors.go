// Package usecase はleadsフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrNoCompanies is returned when qualification is requested for an empty
	// candidate list.
	ErrNoCompanies = errors.New("no candidate companies to qualify")

	// ErrDeliveryNotConfigured is returned when email delivery is requested but
	// no sender has been configured.
	ErrDeliveryNotConfigured = errors.New("email delivery is not configured")
)
