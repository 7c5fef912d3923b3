package panel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/bmpanel/internal/theme"
	"github.com/1broseidon/bmpanel/internal/theme/themetest"
)

func taskbarPanel(t *testing.T) (*Panel, *fakeEnv) {
	t.Helper()
	th := themetest.New(24, theme.ElementTaskbar)
	th.Separator = nil
	env := newFakeEnv()
	env.desktopCount = 1
	env.addWindow(1, &fakeWindow{netName: "A"})
	env.addWindow(2, &fakeWindow{netName: "B"})
	env.activeWin = 2
	p := newTestPanel(env, th, 200)
	p.RebuildDesktops()
	p.UpdateTasks()
	p.Relayout()
	return p, env
}

func TestClickRaisesThenIconifies(t *testing.T) {
	p, env := taskbarPanel(t)
	a, b := p.Tasks.Find(1), p.Tasks.Find(2)
	if a.PosX != 0 || a.Width != 100 || b.PosX != 100 {
		t.Fatalf("unexpected layout: a=%+v b=%+v", *a, *b)
	}

	if s := p.HandleClick(10, 5, ButtonPrimary); s != ScopeTaskbar {
		t.Fatalf("unexpected scope %v", s)
	}
	if !a.Focused || a.Iconified || b.Focused {
		t.Fatalf("first click: a=%+v b=%+v", *a, *b)
	}

	p.HandleClick(10, 5, ButtonPrimary)
	if a.Focused || !a.Iconified {
		t.Fatalf("second click must iconify: a=%+v", *a)
	}

	p.HandleClick(10, 5, ButtonPrimary)
	if !a.Focused || a.Iconified {
		t.Fatalf("third click must restore: a=%+v", *a)
	}

	want := []string{"raise 1", "iconify 1", "activate 1"}
	if diff := cmp.Diff(want, env.calls); diff != "" {
		t.Fatalf("unexpected requests (-want +got):\n%s", diff)
	}
}

func TestClickOutsideTasksClearsFocus(t *testing.T) {
	p, env := taskbarPanel(t)
	p.Tasks.Find(2).Width = 50 // leave [150,200) empty

	if s := p.HandleClick(170, 5, ButtonPrimary); s != ScopeTaskbar {
		t.Fatalf("unexpected scope %v", s)
	}
	if p.Tasks.Find(2).Focused {
		t.Fatalf("stale focus must be cleared")
	}
	if len(env.calls) != 0 {
		t.Fatalf("no request expected, got %v", env.calls)
	}
	if s := p.HandleClick(170, 5, ButtonPrimary); s != ScopeNone {
		t.Fatalf("nothing left to change, got %v", s)
	}
}

func TestSecondaryClickIconifiesActiveDesktop(t *testing.T) {
	th := themetest.New(24, theme.ElementTaskbar)
	env := newFakeEnv()
	env.desktopCount = 2
	env.addWindow(1, &fakeWindow{desktop: 0})
	env.addWindow(2, &fakeWindow{desktop: 1})
	env.addWindow(3, &fakeWindow{desktop: -1})
	env.activeWin = 1
	p := newTestPanel(env, th, 400)
	p.RebuildDesktops()
	p.UpdateTasks()

	if s := p.HandleClick(0, 0, ButtonSecondary); s != ScopeTaskbar {
		t.Fatalf("unexpected scope %v", s)
	}
	if !p.Tasks.Find(1).Iconified || p.Tasks.Find(1).Focused || !p.Tasks.Find(3).Iconified {
		t.Fatalf("tasks on the active desktop must be iconified")
	}
	if p.Tasks.Find(2).Iconified {
		t.Fatalf("tasks on other desktops must be left alone")
	}
	if diff := cmp.Diff([]string{"iconify 3", "iconify 1"}, env.calls); diff != "" {
		t.Fatalf("unexpected requests (-want +got):\n%s", diff)
	}
}

func TestClickSwitchesDesktop(t *testing.T) {
	th := themetest.New(24, theme.ElementSwitcher, theme.ElementTaskbar)
	env := newFakeEnv()
	env.desktopCount = 3
	p := newTestPanel(env, th, 800)
	p.RebuildDesktops()
	p.Relayout()

	second := p.Desktops.At(1)
	if s := p.HandleClick(second.PosX, 0, ButtonPrimary); s != ScopeNone {
		t.Fatalf("desktop switch must wait for the notification, got %v", s)
	}
	if p.Desktops.Active() != 0 {
		t.Fatalf("click must not change the active desktop directly")
	}

	first := p.Desktops.At(0)
	p.HandleClick(first.PosX+first.Width-1, 0, ButtonPrimary)
	p.HandleClick(first.PosX+first.Width-1, 0, 2)

	if diff := cmp.Diff([]string{"switch 1"}, env.calls); diff != "" {
		t.Fatalf("unexpected requests (-want +got):\n%s", diff)
	}
}
