package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "invalid_nonce", Code(ErrInvalidNonce))
	assert.Equal(t, "catalog_unavailable", Code(fmt.Errorf("save exclusions: %w", ErrCatalogUnavailable)))
}
