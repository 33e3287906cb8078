package app

import (
	"testing"

	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/chat"
	"github.com/zhubert/supportchat/internal/demo"
	"github.com/zhubert/supportchat/internal/keys"
	"github.com/zhubert/supportchat/internal/ui/modals"
)

// twoSessions seeds an older and a newer conversation. The directory lists
// the newer one first.
func twoSessions(ids *[2]string) func(*demo.Store) {
	return func(st *demo.Store) {
		ids[0] = seedSession(st, "Do you ship abroad?", "Yes, to 40 countries")
		ids[1] = seedSession(st, "Is the blue jacket in stock?", "Only size M")
	}
}

func TestDirectory_EnterSelectsConversation(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))
	if len(env.m.State().Conversations) != 2 {
		t.Fatalf("setup: directory = %+v", env.m.State().Conversations)
	}
	want := env.m.State().Conversations[1].ID

	env.press(keys.Tab)
	env.press(keys.Down)
	env.press(keys.Enter)

	st := env.m.State()
	if st.Active != want {
		t.Fatalf("active = %q, want %q", st.Active, want)
	}
	if len(st.Messages) != 2 {
		t.Errorf("transcript = %+v", st.Messages)
	}
	if env.m.Focus() != FocusChat {
		t.Error("opening a conversation should focus the composer")
	}
}

func TestDirectory_EnterOnActiveIsNoOp(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))
	env.press(keys.Tab)
	env.press(keys.Enter)
	active := env.m.State().Active

	env.press(keys.Tab)
	env.press(keys.Enter)

	if env.m.State().Active != active {
		t.Errorf("active changed to %q", env.m.State().Active)
	}
	if env.m.Focus() != FocusDirectory {
		t.Error("re-selecting the active row should do nothing")
	}
}

func TestDirectory_DeleteWithConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		wantDeleted bool
	}{
		{"confirm with y", []string{"y", keys.Enter}, true},
		{"confirm with arrow", []string{keys.Down, keys.Enter}, true},
		{"enter on cancel", []string{keys.Enter}, false},
		{"escape", []string{keys.Escape}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids [2]string
			env := newTestEnv(t, twoSessions(&ids))
			target := env.m.State().Conversations[0].ID

			env.press(keys.Tab)
			env.press("d")

			state, ok := env.m.modal.State.(*modals.ConfirmDeleteState)
			if !ok {
				t.Fatalf("modal = %T, want confirm delete", env.m.modal.State)
			}
			if state.ID != target {
				t.Errorf("confirming %q, want %q", state.ID, target)
			}

			for _, k := range tt.keys {
				env.press(k)
			}

			if env.m.modal.IsVisible() {
				t.Error("modal should close")
			}
			_, stored := env.service.Store().Get(target.String())
			if stored == tt.wantDeleted {
				t.Errorf("session stored = %v, want deleted = %v", stored, tt.wantDeleted)
			}
			wantCount := 2
			if tt.wantDeleted {
				wantCount = 1
			}
			if got := len(env.m.State().Conversations); got != wantCount {
				t.Errorf("directory has %d rows, want %d", got, wantCount)
			}
			if !env.m.State().Active.IsZero() {
				t.Error("delete must never select a conversation")
			}
		})
	}
}

func TestDirectory_DeleteWithoutConfirmation(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))
	env.cfg.SetConfirmDelete(false)

	env.press(keys.Tab)
	env.press(keys.Delete)

	if env.m.modal.IsVisible() {
		t.Error("no dialog expected when confirmation is off")
	}
	if env.service.Store().Len() != 1 {
		t.Errorf("store has %d sessions, want 1", env.service.Store().Len())
	}
}

func TestDirectory_DeleteActiveClearsTranscript(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))
	env.cfg.SetConfirmDelete(false)
	env.press(keys.Tab)
	env.press(keys.Enter)
	active := env.m.State().Active

	env.press(keys.Tab)
	env.press("d")

	st := env.m.State()
	if !st.Active.IsZero() || len(st.Messages) != 0 {
		t.Errorf("state after deleting the active conversation = %+v", st)
	}
	for _, c := range st.Conversations {
		if c.ID == active {
			t.Errorf("deleted session %q still listed", active)
		}
	}
}

func TestDirectory_DeleteFailureShowsBanner(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))
	env.cfg.SetConfirmDelete(false)
	// Remove it behind the client's back so the delete answers 404.
	env.service.Store().Delete(env.m.State().Conversations[0].ID.String())

	env.press(keys.Tab)
	env.press("d")

	if got := env.m.State().Error(); got != chat.ErrDeleteFailed {
		t.Errorf("error = %q, want %q", got, chat.ErrDeleteFailed)
	}
}

func TestDirectory_ListsServiceSessionIDs(t *testing.T) {
	var ids [2]string
	env := newTestEnv(t, twoSessions(&ids))

	for _, c := range env.m.State().Conversations {
		if c.ID != api.SessionID(ids[0]) && c.ID != api.SessionID(ids[1]) {
			t.Errorf("unexpected id %q", c.ID)
		}
	}
}
