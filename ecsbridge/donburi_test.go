package ecsbridge

import (
	"testing"

	"github.com/yohamta/donburi"

	"github.com/meridianwm/meridian"
	"github.com/meridianwm/meridian/inputcfg"
	"github.com/meridianwm/meridian/view"
)

func newTestRoot() *meridian.Root {
	return meridian.NewRoot(inputcfg.NewDefault())
}

func TestFocusBridgePublishesFocusChanged(t *testing.T) {
	world := donburi.NewWorld()
	root := newTestRoot()
	bridge := NewFocusBridge(world, root)
	defer bridge.Disconnect(root)

	var received []meridian.FocusChangedEvent
	FocusChangedEventType.Subscribe(world, func(w donburi.World, e meridian.FocusChangedEvent) {
		received = append(received, e)
	})

	win := root.NewWindow(view.NewXdgShell("s1", 800, 600, nil))
	root.RequestFocus(meridian.FocusTarget{Window: win})
	root.TM.RunQueued()

	FocusChangedEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 focus_changed event, got %d", len(received))
	}
	if received[0].New.Window != win {
		t.Fatalf("expected new focus to be the requested window")
	}
}

func TestSceneBridgePublishesSceneChanged(t *testing.T) {
	world := donburi.NewWorld()
	root := newTestRoot()
	bridge := NewSceneBridge(world, root)
	defer bridge.Disconnect(root)

	var count int
	SceneChangedEventType.Subscribe(world, func(w donburi.World, e struct{}) {
		count++
	})

	root.NewWindow(view.NewXdgShell("s1", 800, 600, nil))
	root.TM.RunQueued()

	SceneChangedEventType.ProcessEvents(world)

	if count != 1 {
		t.Fatalf("expected 1 scene_changed event, got %d", count)
	}
}

func TestFocusBridgeDisconnectStopsPublishing(t *testing.T) {
	world := donburi.NewWorld()
	root := newTestRoot()
	bridge := NewFocusBridge(world, root)

	var count int
	FocusChangedEventType.Subscribe(world, func(w donburi.World, e meridian.FocusChangedEvent) {
		count++
	})

	win := root.NewWindow(view.NewXdgShell("s1", 800, 600, nil))
	root.RequestFocus(meridian.FocusTarget{Window: win})
	root.TM.RunQueued()
	FocusChangedEventType.ProcessEvents(world)

	bridge.Disconnect(root)

	root.RequestFocus(meridian.FocusTarget{})
	root.TM.RunQueued()
	FocusChangedEventType.ProcessEvents(world)

	if count != 1 {
		t.Fatalf("expected exactly 1 event before disconnect, got %d", count)
	}
}
