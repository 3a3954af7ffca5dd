package ecs

import "math/bits"

// ComponentMask has one bit per component type id.
type ComponentMask uint64

func (m *ComponentMask) Set(bit uint32)   { *m |= 1 << bit }
func (m *ComponentMask) Unset(bit uint32) { *m &^= 1 << bit }
func (m *ComponentMask) Reset()           { *m = 0 }

func (m ComponentMask) Has(bit uint32) bool { return m&(1<<bit) != 0 }

// Contains reports whether every bit of sub is also set in m.
func (m ComponentMask) Contains(sub ComponentMask) bool { return m&sub == sub }

func (m ComponentMask) Count() int { return bits.OnesCount64(uint64(m)) }
