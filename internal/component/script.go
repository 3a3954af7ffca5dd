package component

// Script names the global Lua step function that drives the entity.
type Script struct {
	Func string
}
