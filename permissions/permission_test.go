package permissions_test

import (
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `{
  "skip": false,
  "endpoints": [
    {"path": "/v1/rooms/", "method": "GET", "skip": true},
    {"path": "/v1/rooms/", "method": "POST", "permissions": ["staff", "admin"]},
    {"path": "/v1/emergencies/{id}/refund", "method": "POST", "permissions": ["staff", "admin"]},
    {"path": "/v1/bookings/{id}", "method": "GET", "permissions": []}
  ]
}`

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(document))
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		method string
		role   string
		allow  bool
	}{
		{name: "public listing", path: "/v1/rooms/", method: "GET", role: "", allow: true},
		{name: "listing without trailing slash", path: "/v1/rooms", method: "GET", role: "", allow: true},
		{name: "staff creates room", path: "/v1/rooms/", method: "POST", role: "staff", allow: true},
		{name: "guest cannot create room", path: "/v1/rooms/", method: "POST", role: "guest", allow: false},
		{name: "method is case insensitive", path: "/v1/emergencies/{id}/refund", method: "post", role: "admin", allow: true},
		{name: "guest cannot settle refund", path: "/v1/emergencies/{id}/refund", method: "POST", role: "guest", allow: false},
		{name: "any authenticated role", path: "/v1/bookings/{id}", method: "GET", role: "guest", allow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.allow, permission.Allows(tt.role))
		})
	}
}

func TestFindPermissionsUnknownRoute(t *testing.T) {
	data, err := permissions.Parse([]byte(document))
	require.NoError(t, err)

	permission := data.FindPermissions("/v1/unknown", "DELETE")

	assert.Empty(t, permission.Path)
	assert.False(t, permission.Skip)
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints": [`))

	assert.Error(t, err)
}

func TestEmbeddedDocument(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/v1/payments/notify", "POST").Skip)
	assert.True(t, data.FindPermissions("/v1/emergencies/guest", "POST").Skip)
	assert.False(t, data.FindPermissions("/v1/emergencies/{id}/refund", "POST").Allows("guest"))
	assert.True(t, data.FindPermissions("/v1/emergencies/cancellations", "POST").Allows("guest"))
	assert.False(t, data.FindPermissions("/v1/admin/dashboard", "GET").Allows("guest"))
	assert.True(t, data.FindPermissions("/v1/rooms/available", "GET").Skip)
	assert.True(t, data.FindPermissions("/v1/bookings/guest", "POST").Skip)
	assert.True(t, data.FindPermissions("/v1/rooms/{id}/availability/", "PUT").Allows("staff"))
	assert.False(t, data.FindPermissions("/v1/rooms/{id}/availability/{availabilityID}", "DELETE").Allows("guest"))
}
