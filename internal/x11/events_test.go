package x11

import (
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/bmpanel/internal/panel"
	"github.com/1broseidon/bmpanel/internal/platform"
)

const (
	atomClientList xproto.Atom = 100 + iota
	atomCurrentDesktop
	atomWmName
	atomWmState
	atomTrayOpcode
	atomOther
)

func testTranslator() *translator {
	return &translator{
		root:       1,
		panel:      2,
		trayOpcode: atomTrayOpcode,
		rootProps: map[xproto.Atom]panel.Event{
			atomClientList:     panel.ClientListChanged{},
			atomCurrentDesktop: panel.ActiveDesktopChanged{},
		},
		winProps: map[xproto.Atom]func(platform.WindowID) panel.Event{
			atomWmName:  windowProperties["WM_NAME"],
			atomWmState: windowProperties["WM_STATE"],
		},
	}
}

func TestTranslate(t *testing.T) {
	tr := testTranslator()
	dock := xproto.ClientMessageEvent{
		Format: 32,
		Window: 2,
		Type:   atomTrayOpcode,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, trayRequestDock, 77, 0, 0}),
	}
	beginMessage := dock
	beginMessage.Data = xproto.ClientMessageDataUnionData32New([]uint32{0, 1, 77, 0, 0})

	tests := []struct {
		name string
		in   xgb.Event
		want panel.Event
	}{
		{"expose", xproto.ExposeEvent{Window: 2}, panel.Exposed{}},
		{"expose with more to come", xproto.ExposeEvent{Window: 2, Count: 1}, nil},
		{"button", xproto.ButtonPressEvent{Event: 2, EventX: 40, EventY: 3, Detail: 1}, panel.ButtonPressed{X: 40, Y: 3, Button: 1}},
		{"button elsewhere", xproto.ButtonPressEvent{Event: 9}, nil},
		{"client list", xproto.PropertyNotifyEvent{Window: 1, Atom: atomClientList}, panel.ClientListChanged{}},
		{"desktop switch", xproto.PropertyNotifyEvent{Window: 1, Atom: atomCurrentDesktop}, panel.ActiveDesktopChanged{}},
		{"unrelated root property", xproto.PropertyNotifyEvent{Window: 1, Atom: atomOther}, nil},
		{"window name", xproto.PropertyNotifyEvent{Window: 30, Atom: atomWmName}, panel.WindowNameChanged{Window: 30}},
		{"window state", xproto.PropertyNotifyEvent{Window: 30, Atom: atomWmState}, panel.WindowIconifyChanged{Window: 30}},
		{"focus", xproto.FocusInEvent{Event: 30}, panel.FocusChanged{Window: 30}},
		{"dock request", dock, panel.TrayDockRequested{Window: 77}},
		{"balloon message", beginMessage, nil},
		{"reparent", xproto.ReparentNotifyEvent{Window: 77, Parent: 1}, panel.TrayIconReparented{Window: 77, Parent: 1}},
		{"destroy", xproto.DestroyNotifyEvent{Window: 77}, panel.WindowDestroyed{Window: 77}},
		{"ignored", xproto.MapNotifyEvent{Window: 77}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.translate(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("translate (-want +got):\n%s", diff)
			}
		})
	}
}
