// Package ecsbridge republishes Root's focus_changed and scene_changed
// signals into a donburi world as typed events, so an external subsystem
// (status bar, IPC — both out of the core's scope) can observe compositor
// state without the core itself depending on donburi.
package ecsbridge

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/meridianwm/meridian"
)

// FocusChangedEventType is the donburi event type for Root.FocusChanged.
// Subscribe to this in an ECS system to react to focus changes.
var FocusChangedEventType = events.NewEventType[meridian.FocusChangedEvent]()

// SceneChangedEventType is the donburi event type for Root.SceneChanged,
// carrying no payload beyond "a transaction round applied".
var SceneChangedEventType = events.NewEventType[struct{}]()

// FocusBridge subscribes to a Root's FocusChanged signal and republishes
// every event into a donburi world as FocusChangedEventType.
type FocusBridge struct {
	listener meridian.Listener
}

// NewFocusBridge connects root.FocusChanged to world, returning a handle
// that can later Disconnect the bridge.
func NewFocusBridge(world donburi.World, root *meridian.Root) *FocusBridge {
	b := &FocusBridge{}
	b.listener = root.FocusChanged.Connect(func(e meridian.FocusChangedEvent) {
		FocusChangedEventType.Publish(world, e)
	})
	return b
}

// Disconnect stops republishing focus changes from the bound Root.
func (b *FocusBridge) Disconnect(root *meridian.Root) {
	root.FocusChanged.Disconnect(b.listener)
}

// SceneBridge subscribes to a Root's SceneChanged signal and republishes
// every event into a donburi world as SceneChangedEventType.
type SceneBridge struct {
	listener meridian.Listener
}

// NewSceneBridge connects root.SceneChanged to world.
func NewSceneBridge(world donburi.World, root *meridian.Root) *SceneBridge {
	b := &SceneBridge{}
	b.listener = root.SceneChanged.Connect(func(struct{}) {
		SceneChangedEventType.Publish(world, struct{}{})
	})
	return b
}

// Disconnect stops republishing scene changes from the bound Root.
func (b *SceneBridge) Disconnect(root *meridian.Root) {
	root.SceneChanged.Disconnect(b.listener)
}
