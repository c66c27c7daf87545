package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, Status("Frozen").Valid())
	assert.False(t, Status("").Valid())
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: "admin"}).IsAdmin())
	assert.True(t, (&User{Role: "Admin"}).IsAdmin())
	assert.True(t, (&User{Role: "ADMIN"}).IsAdmin())
	assert.False(t, (&User{Role: "administrator"}).IsAdmin())
	assert.False(t, (&User{Role: "user"}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

func TestCanAccessPage(t *testing.T) {
	user := &User{Role: "user", AllowedPages: []string{"orders", "issues"}}
	assert.True(t, user.CanAccessPage("orders"))
	assert.False(t, user.CanAccessPage("admin-panel"))
	assert.False(t, user.CanAccessPage(""))

	admin := &User{Role: "Admin"}
	assert.True(t, admin.CanAccessPage("anything"), "admins bypass the allowlist")

	empty := &User{Role: "user"}
	assert.False(t, empty.CanAccessPage("orders"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	live := &Session{ExpiresAt: now.Add(time.Minute)}
	dead := &Session{ExpiresAt: now.Add(-time.Minute)}

	assert.False(t, live.Expired(now))
	assert.True(t, dead.Expired(now))
}

func TestLookupTable(t *testing.T) {
	cfg, ok := LookupTable("Orders")
	assert.True(t, ok)
	assert.Equal(t, "orders", cfg.Table)
	assert.Equal(t, "order_id", cfg.PrimaryKey)
	assert.True(t, cfg.OwnershipScoped())

	cfg, ok = LookupTable("Facilities")
	assert.True(t, ok)
	assert.False(t, cfg.OwnershipScoped())

	_, ok = LookupTable("orders")
	assert.False(t, ok, "registry names are exact")

	_, ok = LookupTable("pg_catalog")
	assert.False(t, ok)
}
