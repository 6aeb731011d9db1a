package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/curveview/internal/engine/camera"
	"github.com/Faultbox/curveview/internal/scene"
)

// Action is a discrete key command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSelect
	ActionAxisX
	ActionAxisY
	ActionAxisZ
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMoveNear
	ActionMoveFar
	ActionGrow
	ActionShrink
	ActionLogCamera
	ActionScreenshot
	ActionReloadPoints
)

// Binding maps a key to an action. Index is the object slot for ActionSelect.
type Binding struct {
	Action Action
	Index  int
}

// DefaultBindings are the viewer's key bindings.
var DefaultBindings = map[sdl.Scancode]Binding{
	sdl.SCANCODE_ESCAPE:   {Action: ActionQuit},
	sdl.SCANCODE_1:        {Action: ActionSelect, Index: 0},
	sdl.SCANCODE_2:        {Action: ActionSelect, Index: 1},
	sdl.SCANCODE_3:        {Action: ActionSelect, Index: 2},
	sdl.SCANCODE_4:        {Action: ActionSelect, Index: 3},
	sdl.SCANCODE_5:        {Action: ActionSelect, Index: 4},
	sdl.SCANCODE_6:        {Action: ActionSelect, Index: 5},
	sdl.SCANCODE_7:        {Action: ActionSelect, Index: 6},
	sdl.SCANCODE_8:        {Action: ActionSelect, Index: 7},
	sdl.SCANCODE_9:        {Action: ActionSelect, Index: 8},
	sdl.SCANCODE_X:        {Action: ActionAxisX},
	sdl.SCANCODE_Y:        {Action: ActionAxisY},
	sdl.SCANCODE_Z:        {Action: ActionAxisZ},
	sdl.SCANCODE_UP:       {Action: ActionMoveUp},
	sdl.SCANCODE_DOWN:     {Action: ActionMoveDown},
	sdl.SCANCODE_LEFT:     {Action: ActionMoveLeft},
	sdl.SCANCODE_RIGHT:    {Action: ActionMoveRight},
	sdl.SCANCODE_KP_PLUS:  {Action: ActionMoveNear},
	sdl.SCANCODE_KP_MINUS: {Action: ActionMoveFar},
	sdl.SCANCODE_U:        {Action: ActionGrow},
	sdl.SCANCODE_H:        {Action: ActionShrink},
	sdl.SCANCODE_C:        {Action: ActionLogCamera},
	sdl.SCANCODE_P:        {Action: ActionScreenshot},
	sdl.SCANCODE_R:        {Action: ActionReloadPoints},
}

// Controls applies key actions to the scene and camera.
// Actions that need the GL context are returned to the caller.
type Controls struct {
	Scene    *scene.Scene
	Camera   *camera.FlyCamera
	Selected int

	log *zap.Logger
}

// NewControls creates controls with the first object selected.
func NewControls(s *scene.Scene, cam *camera.FlyCamera, log *zap.Logger) *Controls {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controls{Scene: s, Camera: cam, log: log}
}

// Handle applies a binding. It returns the action when the caller must act
// on it (quit, screenshot, reload), otherwise ActionNone.
func (c *Controls) Handle(b Binding) Action {
	switch b.Action {
	case ActionQuit, ActionScreenshot, ActionReloadPoints:
		return b.Action
	case ActionSelect:
		c.Select(b.Index)
		return ActionNone
	case ActionLogCamera:
		c.Camera.LogPose(c.log)
		return ActionNone
	}

	obj, ok := c.Scene.Object(c.Selected)
	if !ok {
		return ActionNone
	}

	switch b.Action {
	case ActionAxisX:
		obj.SetRotationAxis(scene.AxisX)
	case ActionAxisY:
		obj.SetRotationAxis(scene.AxisY)
	case ActionAxisZ:
		obj.SetRotationAxis(scene.AxisZ)
	case ActionMoveUp:
		obj.Nudge(0, scene.NudgeStep, 0)
	case ActionMoveDown:
		obj.Nudge(0, -scene.NudgeStep, 0)
	case ActionMoveLeft:
		obj.Nudge(-scene.NudgeStep, 0, 0)
	case ActionMoveRight:
		obj.Nudge(scene.NudgeStep, 0, 0)
	case ActionMoveNear:
		obj.Nudge(0, 0, scene.NudgeStep)
	case ActionMoveFar:
		obj.Nudge(0, 0, -scene.NudgeStep)
	case ActionGrow:
		obj.Grow(scene.ScaleStep)
	case ActionShrink:
		obj.Grow(-scene.ScaleStep)
	}
	return ActionNone
}

// Select makes object i current. An index past the loaded objects is
// reported and ignored.
func (c *Controls) Select(i int) bool {
	obj, ok := c.Scene.Object(i)
	if !ok {
		c.log.Info("object does not exist", zap.Int("object", i+1), zap.Int("loaded", c.Scene.Len()))
		return false
	}
	c.Selected = i
	c.log.Info("object selected", zap.Int("object", i+1), zap.String("name", obj.Name))
	return true
}

// Movement returns fly camera directions from held WASD keys.
func Movement(held func(sdl.Scancode) bool) (forward, right float32) {
	if held(sdl.SCANCODE_W) {
		forward++
	}
	if held(sdl.SCANCODE_S) {
		forward--
	}
	if held(sdl.SCANCODE_D) {
		right++
	}
	if held(sdl.SCANCODE_A) {
		right--
	}
	return forward, right
}
