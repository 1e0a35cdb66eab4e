package validation

import (
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AllPass(t *testing.T) {
	t.Parallel()

	err := Run(
		Required("name", "Ada", "Name is required"),
		Email("email", "ada@example.com", "Please include a valid email"),
		MinLen("password", "hunter22", 6, "Password too short"),
	)
	assert.NoError(t, err)
}

func TestRun_CollectsAllFailures(t *testing.T) {
	t.Parallel()

	err := Run(
		Required("name", "", "Name is required"),
		Email("email", "not-an-email", "Please include a valid email"),
		MinLen("password", "abc", 6, "Password too short"),
	)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)

	// Every failing rule is reported, in declaration order.
	require.Len(t, appErr.Fields, 3)
	assert.Equal(t, "name", appErr.Fields[0].Param)
	assert.Equal(t, "email", appErr.Fields[1].Param)
	assert.Equal(t, "password", appErr.Fields[2].Param)
}

func TestRun_PartialFailure(t *testing.T) {
	t.Parallel()

	err := Run(
		Required("name", "Ada", "Name is required"),
		Email("email", "bad", "Please include a valid email"),
	)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "email", appErr.Fields[0].Param)
	assert.Equal(t, "Please include a valid email", appErr.Fields[0].Msg)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "first.last@example.com", "x+tag@sub.domain.org"}
	invalid := []string{"", "plain", "@nohost.com", "no@tld", "spaces in@mail.com"}

	for _, v := range valid {
		assert.Nil(t, Email("email", v, "bad")(), "expected %q to be valid", v)
	}
	for _, v := range invalid {
		assert.NotNil(t, Email("email", v, "bad")(), "expected %q to be invalid", v)
	}
}

func TestMaxLen(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MaxLen("text", "short", 10, "Too long")())
	item := MaxLen("text", "this is far too long", 10, "Too long")()
	require.NotNil(t, item)
	assert.Contains(t, item.Msg, "Too long")
}
