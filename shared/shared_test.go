package shared_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParseOptionalBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "   ", want: nil},
		{input: "true", want: &yes},
		{input: "1", want: &yes},
		{input: " T ", want: &yes},
		{input: "false", want: &no},
		{input: "0", want: &no},
		{input: "maybe", want: nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ParseOptionalBool(tt.input))
		})
	}
}

func TestParseInt(t *testing.T) {
	got, err := shared.ParseInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = shared.ParseInt("four")
	assert.ErrorContains(t, err, `parse int "four"`)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 25, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
		{total: -3, limit: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.TotalPages(tt.total, tt.limit))
		})
	}
}

type roomPatch struct {
	Name     string  `db:"name"`
	Capacity int     `db:"capacity"`
	Notes    *string `db:"notes"`
	Internal string  `db:"-"`
	Label    string
}

func TestChangedFields(t *testing.T) {
	empty := ""

	tests := []struct {
		name string
		data any
		want map[string]any
	}{
		{
			name: "zero values are skipped",
			data: roomPatch{Name: "Ocean Suite", Internal: "x", Label: "y"},
			want: map[string]any{"name": "Ocean Suite"},
		},
		{
			name: "non nil pointer is kept even when it points at a zero value",
			data: roomPatch{Capacity: 3, Notes: &empty},
			want: map[string]any{"capacity": 3, "notes": &empty},
		},
		{
			name: "pointer to struct",
			data: &roomPatch{Capacity: 2},
			want: map[string]any{"capacity": 2},
		},
		{
			name: "nothing changed",
			data: roomPatch{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ChangedFields(tt.data, "staff-7")

			assert.Equal(t, "staff-7", got[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, got[constant.FieldModifiedAt])

			delete(got, constant.FieldModifiedBy)
			delete(got, constant.FieldModifiedAt)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("BK-1001", "booking_code", "bookings")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.booking_code = :booking_code)", where)
	assert.Equal(t, map[string]any{"booking_code": "BK-1001"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("deluxe", "type", "rooms")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)

	assert.True(t, strings.HasPrefix(first, "room:gets:"))
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, shared.FilterByID("suite", "type", "rooms")))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)
	ctx := context.Background()

	redisCache.EXPECT().Clear(ctx, "room:gets"+constant.Asterix).Return(nil)
	shared.InvalidateCaches(ctx, redisCache, "room:gets")

	redisCache.EXPECT().Clear(ctx, "gallery"+constant.Asterix).Return(errors.New("redis down"))
	shared.InvalidateCaches(ctx, redisCache, "gallery")
}

func TestCurrentUser(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)

	userID, role := shared.CurrentUser(ctx)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, constant.RoleStaff, role)

	userID, role = shared.CurrentUser(context.Background())
	assert.Empty(t, userID)
	assert.Empty(t, role)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, shared.IsStaff(constant.RoleAdmin))
	assert.True(t, shared.IsStaff(constant.RoleStaff))
	assert.False(t, shared.IsStaff(constant.RoleGuest))
	assert.False(t, shared.IsStaff(""))
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("failed to insert data: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}),
			want: true,
		},
		{name: "foreign key violation", err: &pq.Error{Code: constant.PqErrorCodeFkViolation}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, shared.IsForeignKeyViolation(fmt.Errorf("delete: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation})))
	assert.False(t, shared.IsForeignKeyViolation(&pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
	assert.False(t, shared.IsForeignKeyViolation(nil))
}
