package workspace

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DukeRupert/carecrm/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_RoundTrip(t *testing.T) {
	sel := selection.New()
	ctx := With(context.Background(), "ws-1", sel)

	assert.Equal(t, "ws-1", ID(ctx))
	assert.Same(t, sel, Selection(ctx))

	r := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	assert.Same(t, sel, SelectionFromRequest(r))

	opened, err := Open(ctx)
	require.NoError(t, err)
	assert.Same(t, sel, opened)
}

func TestOutsideWorkspace(t *testing.T) {
	assert.Equal(t, "", ID(context.Background()))
	assert.Nil(t, Selection(context.Background()))
	assert.False(t, Snapshot(context.Background()).Selected())

	_, err := Open(context.Background())
	assert.ErrorIs(t, err, ErrNoWorkspace)
}

func TestWithOpener_OpensOnce(t *testing.T) {
	calls := 0
	sel := selection.New()
	ctx := WithOpener(context.Background(), func() (string, *selection.Context, error) {
		calls++
		return "ws-new", sel, nil
	})

	assert.Nil(t, Selection(ctx), "reads do not open the workspace")
	assert.Equal(t, "", ID(ctx))
	assert.NotNil(t, Snapshot(ctx).CustomerList)
	assert.Equal(t, 0, calls)

	first, err := Open(ctx)
	require.NoError(t, err)
	second, err := Open(ctx)
	require.NoError(t, err)

	assert.Same(t, sel, first)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ws-new", ID(ctx))
	assert.Same(t, sel, Selection(ctx))
}

func TestWithOpener_Error(t *testing.T) {
	boom := errors.New("full")
	ctx := WithOpener(context.Background(), func() (string, *selection.Context, error) {
		return "", nil, boom
	})

	_, err := Open(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, Selection(ctx))
}
