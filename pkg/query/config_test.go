package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-results/internal/testutil"
	sserr "github.com/StricklySoft/stricklysoft-results/pkg/errors"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Config{}.Validate())
	require.NoError(t, Config{MaxConns: 10, MinConns: 2}.Validate())

	testutil.AssertErrorCode(t, Config{MaxConns: -1}.Validate(), sserr.CodeValidation)
	testutil.AssertErrorCode(t, Config{MaxConns: 2, MinConns: 5}.Validate(), sserr.CodeValidation)
}

func TestConnect_RequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	testutil.RequireErrorCode(t, err, sserr.CodeValidationRequired)
}

func TestConnect_BadURI(t *testing.T) {
	_, err := Connect(context.Background(), Config{URI: "postgres://user@host:notaport/db"})
	testutil.RequireErrorCode(t, err, sserr.CodeValidation)
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "shop", databaseName("postgres://u:p@localhost:5432/shop?sslmode=disable"))
	assert.Equal(t, "", databaseName("postgres://localhost"))
}
