package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-mindster/internal/domain"
)

func TestRegisterRequestValidate(t *testing.T) {
	ok := RegisterRequest{Email: " a@x.com ", Password: "password123"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, "a@x.com", ok.Email)

	for _, bad := range []RegisterRequest{
		{Email: "not-an-email", Password: "password123"},
		{Email: "", Password: "password123"},
		{Email: "a@x.com", Password: "short"},
	} {
		assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput, bad.Email)
	}
}

func TestUpdateProviderRequestBaseURLStates(t *testing.T) {
	var absent, null, set UpdateProviderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"n"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"baseUrl":null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"baseUrl":"https://api.example/v1"}`), &set))

	in := absent.Input()
	assert.False(t, in.ResetBaseURL)
	assert.Nil(t, in.BaseURL)

	in = null.Input()
	assert.True(t, in.ResetBaseURL)
	assert.Nil(t, in.BaseURL)

	in = set.Input()
	assert.False(t, in.ResetBaseURL)
	require.NotNil(t, in.BaseURL)
	assert.Equal(t, "https://api.example/v1", *in.BaseURL)
}

func TestProviderRequestsRejectBadURLs(t *testing.T) {
	bad := "ftp://x"
	c := CreateProviderRequest{Name: "n", APIKey: "k", BaseURL: &bad}
	assert.ErrorIs(t, c.Validate(), domain.ErrInvalidInput)

	var u UpdateProviderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"baseUrl":"nope"}`), &u))
	assert.ErrorIs(t, u.Validate(), domain.ErrInvalidInput)

	empty := ""
	u = UpdateProviderRequest{APIKey: &empty}
	assert.ErrorIs(t, u.Validate(), domain.ErrInvalidInput)
}

func TestConversationRequests(t *testing.T) {
	c := CreateConversationRequest{ProviderID: "not-a-uuid", Model: "m"}
	assert.ErrorIs(t, c.Validate(), domain.ErrInvalidInput)

	c = CreateConversationRequest{ProviderID: "6f1c2a0e-7d4b-4b8e-9a51-3b0f2d1e9c77", Model: " "}
	assert.ErrorIs(t, c.Validate(), domain.ErrInvalidInput)

	c.Model = "gpt-4o"
	require.NoError(t, c.Validate())
	assert.Equal(t, "6f1c2a0e-7d4b-4b8e-9a51-3b0f2d1e9c77", c.Input().ProviderID.String())

	s := SendMessageRequest{Content: ""}
	assert.ErrorIs(t, s.Validate(), domain.ErrInvalidInput)
}
