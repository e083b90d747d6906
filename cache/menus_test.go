package cache

import (
	"context"
	"testing"
	"time"
)

func TestHelpersWithoutClient(t *testing.T) {
	Client = nil
	ctx := context.Background()

	SetMenus(ctx, "2026-10-19", []byte(`{"menus":[]}`), time.Minute)
	if _, ok := GetMenus(ctx, "2026-10-19"); ok {
		t.Fatal("expected miss without a redis client")
	}
	InvalidateMenus(ctx, "2026-10-19")
}

func TestInitWithoutConfigLeavesCacheDisabled(t *testing.T) {
	Init("", "")
	if Client != nil {
		t.Fatal("client set without configuration")
	}
	Init("://bad-url", "")
	if Client != nil {
		t.Fatal("client set from invalid url")
	}
}

func TestMenusKey(t *testing.T) {
	if got := menusKey("2026-01-02"); got != "menus:2026-01-02" {
		t.Errorf("menusKey() = %q", got)
	}
}
