package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreUnavailableErr(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailableErr("Failed to fetch contacts", cause)

	require.ErrorIs(t, err, cause, "cause must be reachable through unwrap")
	require.Contains(t, err.Error(), "connection refused", "cause must be part of error text")

	body, jsonErr := json.Marshal(err)
	require.NoError(t, jsonErr)
	require.JSONEq(t, `{"error":"Failed to fetch contacts"}`, string(body), "cause must not leak to response body")
}

func TestErrorsBody(t *testing.T) {
	t.Log("duplicate email")
	{
		body, err := json.Marshal(NewDuplicateEmailErr("ann@x.com"))
		require.NoError(t, err)
		require.JSONEq(t, `{"error":"This email already exists."}`, string(body))
	}

	t.Log("entry not found")
	{
		body, err := json.Marshal(NewEntryNotFoundErr("Contact not found"))
		require.NoError(t, err)
		require.JSONEq(t, `{"error":"Contact not found"}`, string(body))
	}
}
