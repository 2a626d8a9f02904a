package services

import (
	"fmt"

	"canteen/pkg/apperr"
)

// persistence tags a storage fault so controllers can answer 500 without
// leaking the driver error.
func persistence(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
}
