package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmandshop/shop-api/internal/domains/users/adapters/memory"
	"github.com/helmandshop/shop-api/internal/domains/users/domain"
	"github.com/helmandshop/shop-api/internal/domains/users/ports"
)

func staticCounter(n int64) ports.ActivityCounter {
	return ports.ActivityCounterFunc(func(context.Context, string) (int64, error) {
		return n, nil
	})
}

func TestRegisterUser_DefaultsRole(t *testing.T) {
	svc := NewService(memory.NewRepository(), nil, nil, nil)

	user, err := svc.RegisterUser(context.Background(), domain.User{
		ID:    "user-1",
		Name:  "Ahmad Wali",
		Email: "ahmad@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository(), nil, nil, nil)

	for name, user := range map[string]domain.User{
		"missing id":    {Name: "Ahmad", Email: "a@example.com"},
		"missing name":  {ID: "user-1", Email: "a@example.com"},
		"missing email": {ID: "user-1", Name: "Ahmad"},
		"bad role":      {ID: "user-1", Name: "Ahmad", Email: "a@example.com", Role: "ROOT"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), user)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetProfile_AggregatesActivityCounters(t *testing.T) {
	svc := NewService(memory.NewRepository(), staticCounter(3), staticCounter(7), staticCounter(2))

	_, err := svc.RegisterUser(context.Background(), domain.User{
		ID:    "user-1",
		Name:  "Ahmad Wali",
		Email: "ahmad@example.com",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.User.ID)
	assert.Equal(t, int64(3), profile.Stats.CartCount)
	assert.Equal(t, int64(7), profile.Stats.FavoritesCount)
	assert.Equal(t, int64(2), profile.Stats.OrdersCount)
}

func TestGetProfile_NilCountersReportZero(t *testing.T) {
	svc := NewService(memory.NewRepository(), nil, nil, nil)

	_, err := svc.RegisterUser(context.Background(), domain.User{
		ID:    "user-1",
		Name:  "Ahmad Wali",
		Email: "ahmad@example.com",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{}, profile.Stats)
}

func TestGetProfile_UserNotFound(t *testing.T) {
	svc := NewService(memory.NewRepository(), nil, nil, nil)

	_, err := svc.GetProfile(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetProfile_CounterFailureSurfaces(t *testing.T) {
	boom := errors.New("counter backend down")
	failing := ports.ActivityCounterFunc(func(context.Context, string) (int64, error) {
		return 0, boom
	})
	svc := NewService(memory.NewRepository(), failing, nil, nil)

	_, err := svc.RegisterUser(context.Background(), domain.User{
		ID:    "user-1",
		Name:  "Ahmad Wali",
		Email: "ahmad@example.com",
	})
	require.NoError(t, err)

	_, err = svc.GetProfile(context.Background(), "user-1")
	require.ErrorIs(t, err, boom)
}
