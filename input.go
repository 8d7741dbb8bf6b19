package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type InputManager interface {
	TimeDelta() float32
	IsKeyTap(key glfw.Key) bool
	Update(context *glfw.Window)
}

type input struct {
	curr inputState
	prev inputState
	// polled keys, a tap needs the key in both states
	watched []glfw.Key
}

type inputState struct {
	time float32
	keys map[glfw.Key]bool
}

var Input InputManager

func NewInputManager(ctx *glfw.Window, keys ...glfw.Key) *input {
	i := &input{
		curr:    inputState{keys: map[glfw.Key]bool{}},
		prev:    inputState{keys: map[glfw.Key]bool{}},
		watched: keys,
	}

	i.Update(ctx)
	// Make sure dTime != 0 to avoid possible errors
	i.prev.time = i.curr.time - 1./60.
	for k, v := range i.curr.keys {
		i.prev.keys[k] = v
	}

	return i
}

func (i *input) TimeDelta() float32 {
	return i.curr.time - i.prev.time
}

func (i *input) IsKeyTap(key glfw.Key) bool {
	return i.curr.keys[key] && !i.prev.keys[key]
}

func (i *input) Update(ctx *glfw.Window) {
	keys := i.prev.keys
	i.prev = i.curr

	for _, key := range i.watched {
		keys[key] = ctx.GetKey(key) != glfw.Release
	}

	i.curr = inputState{
		time: float32(glfw.GetTime()),
		keys: keys,
	}
}
