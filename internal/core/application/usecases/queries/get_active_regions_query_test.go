package queries_test

import (
	"testing"

	"shipping/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveRegionsQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveRegionsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetActiveRegionsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveRegionsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveRegionsQueryIsNotConstructed)
}
