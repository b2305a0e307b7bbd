package prefs

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMigrateIdempotent(t *testing.T) {
	s := testStore(t)

	result, err := s.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := testStore(t)

	v, ok, err := s.Get("never-set")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Errorf("Get(missing) = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestSetGetOverwrite(t *testing.T) {
	s := testStore(t)

	if err := s.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "v2" {
		t.Errorf("Get(k) = (%q, %v), want (v2, true)", v, ok)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is fine.
	if err := s.Delete("never-set"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestThemeMode(t *testing.T) {
	s := testStore(t)

	mode, err := s.ThemeMode()
	if err != nil {
		t.Fatal(err)
	}
	if mode != "" {
		t.Errorf("unset theme mode = %q, want empty", mode)
	}

	if err := s.SetThemeMode("light"); err != nil {
		t.Fatal(err)
	}
	mode, _ = s.ThemeMode()
	if mode != "light" {
		t.Errorf("theme mode = %q, want light", mode)
	}
}

func TestMutedChats(t *testing.T) {
	s := testStore(t)

	if err := s.SetChatMuted("c1", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetChatMuted("c2", true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetChatMuted("c1", false); err != nil {
		t.Fatal(err)
	}

	set, err := s.MutedChats()
	if err != nil {
		t.Fatal(err)
	}
	if set["c1"] || !set["c2"] {
		t.Errorf("muted set = %v, want only c2", set)
	}
}

func TestMutedChatsCorruptEntry(t *testing.T) {
	s := testStore(t)

	// A corrupt JSON entry is treated as unset, not an error.
	if err := s.Set("mutedChats", "{not json"); err != nil {
		t.Fatal(err)
	}
	set, err := s.MutedChats()
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 0 {
		t.Errorf("corrupt entry should read as empty set, got %v", set)
	}
}

func TestPinnedMessagePerChat(t *testing.T) {
	s := testStore(t)

	if err := s.SetPinnedMessage("c1", "m9"); err != nil {
		t.Fatal(err)
	}
	id, ok, err := s.PinnedMessage("c1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || id != "m9" {
		t.Errorf("pinned = (%q, %v), want (m9, true)", id, ok)
	}

	// Other chats are unaffected.
	if _, ok, _ := s.PinnedMessage("c2"); ok {
		t.Error("pin leaked to another chat")
	}

	// Empty ID unpins.
	if err := s.SetPinnedMessage("c1", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.PinnedMessage("c1"); ok {
		t.Error("still pinned after unpin")
	}
}

func TestDeliveryStatus(t *testing.T) {
	s := testStore(t)

	if err := s.SetDeliveryStatus("m1", "sent"); err != nil {
		t.Fatal(err)
	}
	st, ok, err := s.DeliveryStatus("m1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || st != "sent" {
		t.Errorf("status = (%q, %v), want (sent, true)", st, ok)
	}
}

func TestReactionsRoundTrip(t *testing.T) {
	s := testStore(t)

	want := map[string]string{"u1": "👍", "u2": "❤️"}
	if err := s.SetReactions("m1", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Reactions("m1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got["u1"] != "👍" || got["u2"] != "❤️" {
		t.Errorf("reactions = %v, want %v", got, want)
	}

	// Clearing removes the row entirely.
	if err := s.SetReactions("m1", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("reactions:m1"); ok {
		t.Error("empty reaction set should delete the key")
	}
}
