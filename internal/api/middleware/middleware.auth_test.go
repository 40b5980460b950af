package middleware

import (
	"context"
	"testing"
	"time"

	usersmodels "github.com/karlsome/FreyaAdmin-sub000/internal/api/users/models"
	"github.com/karlsome/FreyaAdmin-sub000/internal/events"
	"github.com/karlsome/FreyaAdmin-sub000/internal/global"
	"github.com/karlsome/FreyaAdmin-sub000/internal/utility"
)

func newTestAuthManager() *AuthManager {
	return &AuthManager{
		Cache: utility.NewCache(time.Minute, time.Minute),
	}
}

func TestInvalidateUserDropsCachedAccount(t *testing.T) {
	am := newTestAuthManager()
	am.Cache.Set("auth_user:alice", usersmodels.User{Username: "alice", Token: "stale"})

	am.InvalidateUser("alice")

	if _, found := am.Cache.Get("auth_user:alice"); found {
		t.Fatal("cached account survived InvalidateUser")
	}
}

// A users-collection change must evict the cached account, otherwise a
// revoked token keeps authenticating until the cache TTL runs out.
func TestUsersChangeEvictsCachedAccount(t *testing.T) {
	prev := global.MongoDB_ColNames.Users
	global.MongoDB_ColNames.Users = "users"
	defer func() { global.MongoDB_ColNames.Users = prev }()

	am := newTestAuthManager()
	am.Cache.Set("auth_user:alice", usersmodels.User{Username: "alice", Token: "stale"})
	registerUserInvalidation(am)

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "users",
		Operation:      events.OpUpdate,
		Document:       usersmodels.User{Username: "alice"},
	})

	deadline := time.Now().Add(time.Second)
	for {
		if _, found := am.Cache.Get("auth_user:alice"); !found {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("cached account not evicted after users collection change")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOtherCollectionChangeKeepsCachedAccount(t *testing.T) {
	prev := global.MongoDB_ColNames.Users
	global.MongoDB_ColNames.Users = "users"
	defer func() { global.MongoDB_ColNames.Users = prev }()

	am := newTestAuthManager()
	am.Cache.Set("auth_user:alice", usersmodels.User{Username: "alice"})
	registerUserInvalidation(am)

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "pressDB",
		Operation:      events.OpUpdate,
		Document:       map[string]interface{}{"品番": "A100"},
	})

	time.Sleep(50 * time.Millisecond)
	if _, found := am.Cache.Get("auth_user:alice"); !found {
		t.Fatal("press record change must not evict cached accounts")
	}
}
