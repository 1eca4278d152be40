package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StricklySoft/stricklysoft-results/internal/testutil"
)

func TestToPublic(t *testing.T) {
	r := New().FailedWithException("   ", errors.New("internal detail")).
		WithErrorCode("first", "E1").
		WithErrors(NewError(""), NewError("  "), NewError("second"))
	require.NoError(t, r.AddMetadata("secret", "value"))

	p := r.Public()

	assert.False(t, p.Succeeded)
	assert.Equal(t, "", p.Message, "blank message collapses")
	assert.Equal(t, []string{"first", "second"}, p.Errors, "blank errors dropped, codes not exposed")

	for _, hidden := range []string{"internal detail", "statusCode", "BadRequest", "metadata", "secret", "E1", "exception"} {
		testutil.AssertJSONNotContains(t, p, hidden)
	}
}

func TestToPublic_ErrorsNilWhenEmpty(t *testing.T) {
	p := ToPublic(New().SuccessfulMessage("saved").WithErrors(NewError(" ")))

	assert.True(t, p.Succeeded)
	assert.Equal(t, "saved", p.Message)
	assert.Nil(t, p.Errors)

	m := testutil.MarshalMap(t, p)
	assert.Equal(t, map[string]any{"succeeded": true, "message": "saved"}, m)
}

func TestToPublic_Nil(t *testing.T) {
	p := ToPublic(nil)
	assert.False(t, p.Succeeded)
	assert.Empty(t, p.Message)
	assert.Nil(t, p.Errors)

	po := ToPublicOf[int](nil)
	assert.False(t, po.Succeeded)
	assert.Zero(t, po.Data)
}

func TestToPublicOf(t *testing.T) {
	r := NewOf[user]().SuccessfulData(user{ID: 3, Name: "lin"})
	p := r.Public()

	assert.True(t, p.Succeeded)
	assert.Equal(t, user{ID: 3, Name: "lin"}, p.Data)

	m := testutil.MarshalMap(t, p)
	assert.Equal(t, map[string]any{
		"succeeded": true,
		"data":      map[string]any{"id": float64(3), "name": "lin"},
	}, m)
}

func TestToPublicOf_DataOmittedOnlyWhenNil(t *testing.T) {
	nilData := NewOf[*user]().Failed().Public()
	assert.NotContains(t, testutil.MarshalMap(t, nilData), "data")

	emptyRows := NewGrid[string]().WithItems([]string{}).Public()
	assert.Equal(t, []any{}, testutil.MarshalMap(t, emptyRows)["data"])

	nilGrid := (*Grid[string])(nil).Public()
	assert.False(t, nilGrid.Succeeded)
}
