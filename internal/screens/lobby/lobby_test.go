package lobby

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/inayatwani8899/mindgauge/internal/api"
	"github.com/inayatwani8899/mindgauge/internal/router"
)

type fakePort struct{ active bool }

func (p *fakePort) Enter() error   { p.active = true; return nil }
func (p *fakePort) Exit() error    { p.active = false; return nil }
func (p *fakePort) IsActive() bool { return p.active }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func loadedLobby(t *testing.T, client *api.MockClient) *LobbyScreen {
	t.Helper()
	l := New(client, "student-1", &fakePort{}, 5*time.Second, zerolog.Nop())
	msg := l.Init()()
	scr, _ := l.Update(msg)
	return scr.(*LobbyScreen)
}

func TestListsTests(t *testing.T) {
	client := api.NewDemoClient()
	l := loadedLobby(t, client)

	if !l.loaded || l.loadErr != "" {
		t.Fatalf("loaded=%v err=%q", l.loaded, l.loadErr)
	}
	// Two demo tests plus results and exit entries.
	if got := len(l.menu.Items); got != 4 {
		t.Fatalf("menu items = %d, want 4", got)
	}
}

func TestSelectingTestPushesAttempt(t *testing.T) {
	client := api.NewDemoClient()
	l := loadedLobby(t, client)

	scr, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_ = scr
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected a screen push for the selected test")
	}
}

func TestLoadFailureRetries(t *testing.T) {
	client := api.NewDemoClient()
	client.Err = errors.New("network down")
	l := loadedLobby(t, client)

	if l.loadErr == "" {
		t.Fatal("expected load error")
	}

	client.Err = nil
	scr, cmd := l.Update(keyPress('r'))
	l = scr.(*LobbyScreen)
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	scr, _ = l.Update(cmd())
	l = scr.(*LobbyScreen)
	if l.loadErr != "" {
		t.Errorf("loadErr = %q, want cleared", l.loadErr)
	}
	if len(l.menu.Items) == 0 {
		t.Error("expected menu populated after retry")
	}
}

func TestViewStates(t *testing.T) {
	client := api.NewDemoClient()
	l := New(client, "student-1", &fakePort{}, 5*time.Second, zerolog.Nop())
	if l.View(80, 24) == "" {
		t.Error("expected non-empty loading view")
	}
	l = loadedLobby(t, client)
	if l.View(80, 24) == "" {
		t.Error("expected non-empty list view")
	}
}
