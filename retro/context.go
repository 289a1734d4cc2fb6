package retro

import (
	"log/slog"
)

// scope is the state every context borrows for one dispatcher call.
type scope struct {
	env Environment
	d   *Dispatcher
}

func (s scope) ifaces() *Interfaces { return s.d.ifaces }
func (s scope) strict() bool        { return s.d.cfg.StrictFlags }
func (s scope) log() *slog.Logger   { return s.d.log }
func (s scope) tramp() *Trampolines { return &s.d.hooks.Trampolines }

// Interfaces returns the registry shared by all contexts of a dispatcher.
func (s scope) Interfaces() *Interfaces { return s.d.ifaces }

// Logger returns the dispatcher's logger, which writes to the host log
// interface once one was acquired.
func (s scope) Logger() *slog.Logger { return s.d.log }

// GenericContext exposes the operations that are legal in every lifecycle
// phase.
type GenericContext struct{ scope }

// Contexts of phases that only allow generic operations.
type (
	ResetContext            = GenericContext
	DeinitContext           = GenericContext
	GetSerializeSizeContext = GenericContext
	SerializeContext        = GenericContext
	UnserializeContext      = GenericContext
	UnloadGameContext       = GenericContext
	CheatResetContext       = GenericContext
	CheatSetContext         = GenericContext
	GetRegionContext        = GenericContext
	GetMemoryDataContext    = GenericContext
	GetMemorySizeContext    = GenericContext
)

// InitContext is handed to Core.Init.
type InitContext struct{ scope }

// SetEnvironmentContext is handed to EnvironmentSetter.SetEnvironment.
type SetEnvironmentContext struct{ scope }

// GetAvInfoContext is handed to Core.SystemAVInfo.
type GetAvInfoContext struct{ scope }

// OptionsChangedContext is handed to OptionsChangedHandler.OptionsChanged.
type OptionsChangedContext struct{ scope }

// LoadGameContext is handed to Core.LoadGame.
type LoadGameContext struct{ scope }

// LoadGameSpecialContext is handed to SpecialLoader.LoadGameSpecial.
type LoadGameSpecialContext struct{ scope }

// RunContext is handed to Core.Run.
type RunContext struct{ scope }

// AudioContext is handed to AudioWriter.WriteAudio and is reachable from a
// RunContext.
type AudioContext struct{ scope }

func (c *InitContext) Generic() *GenericContext            { return &GenericContext{c.scope} }
func (c *SetEnvironmentContext) Generic() *GenericContext  { return &GenericContext{c.scope} }
func (c *GetAvInfoContext) Generic() *GenericContext       { return &GenericContext{c.scope} }
func (c *OptionsChangedContext) Generic() *GenericContext  { return &GenericContext{c.scope} }
func (c *LoadGameContext) Generic() *GenericContext        { return &GenericContext{c.scope} }
func (c *LoadGameSpecialContext) Generic() *GenericContext { return &GenericContext{c.scope} }
func (c *RunContext) Generic() *GenericContext             { return &GenericContext{c.scope} }
func (c *AudioContext) Generic() *GenericContext           { return &GenericContext{c.scope} }

// LoadGame narrows a special load to the regular load operations.
func (c *LoadGameSpecialContext) LoadGame() *LoadGameContext {
	return &LoadGameContext{c.scope}
}

// Audio narrows a run context to the audio operations.
func (c *RunContext) Audio() *AudioContext {
	return &AudioContext{c.scope}
}
