package fault_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iconnecthq/iconnect/internal/fault"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, fault.NotFound, fault.KindOf(fault.New(fault.NotFound, "missing")))
	assert.Equal(t, fault.Internal, fault.KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", fault.New(fault.FailedPrecondition, "Insufficient credits."))
	assert.Equal(t, fault.FailedPrecondition, fault.KindOf(wrapped))
	assert.True(t, fault.IsKind(wrapped, fault.FailedPrecondition))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[fault.Kind]int{
		fault.Unauthenticated:    http.StatusUnauthorized,
		fault.PermissionDenied:   http.StatusForbidden,
		fault.InvalidArgument:    http.StatusBadRequest,
		fault.NotFound:           http.StatusNotFound,
		fault.FailedPrecondition: http.StatusConflict,
	}

	for kind, want := range cases {
		assert.Equal(t, want, fault.HTTPStatus(fault.New(kind, "x")))
	}

	assert.Equal(t, http.StatusInternalServerError, fault.HTTPStatus(errors.New("boom")))
}
