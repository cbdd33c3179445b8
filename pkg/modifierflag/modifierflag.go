package modifierflag

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/guettli/eventqueue/pkg/types"
)

type Type int

const (
	Increase Type = iota
	Decrease
	IncreaseLock
	DecreaseLock
	IncreaseLedLock
	DecreaseLedLock
	IncreaseSticky
	DecreaseSticky
)

var typeNames = []string{
	"increase",
	"decrease",
	"increase_lock",
	"decrease_lock",
	"increase_led_lock",
	"decrease_led_lock",
	"increase_sticky",
	"decrease_sticky",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

type ActiveModifierFlag struct {
	Type     Type
	Flag     types.ModifierFlag
	DeviceID types.DeviceID
}

func NewActiveModifierFlag(t Type, flag types.ModifierFlag, deviceID types.DeviceID) ActiveModifierFlag {
	return ActiveModifierFlag{Type: t, Flag: flag, DeviceID: deviceID}
}

func (f ActiveModifierFlag) Count() int {
	switch f.Type {
	case Increase, IncreaseLock, IncreaseLedLock, IncreaseSticky:
		return 1
	}
	return -1
}

func (f ActiveModifierFlag) inverseType() Type {
	switch f.Type {
	case Increase:
		return Decrease
	case Decrease:
		return Increase
	case IncreaseLock:
		return DecreaseLock
	case DecreaseLock:
		return IncreaseLock
	case IncreaseLedLock:
		return DecreaseLedLock
	case DecreaseLedLock:
		return IncreaseLedLock
	case IncreaseSticky:
		return DecreaseSticky
	}
	return IncreaseSticky
}

// IsPaired reports whether f and other cancel each other out.
func (f ActiveModifierFlag) IsPaired(other ActiveModifierFlag) bool {
	return f.inverseType() == other.Type &&
		f.Flag == other.Flag &&
		f.DeviceID == other.DeviceID
}

func (f ActiveModifierFlag) AnyLock() bool {
	switch f.Type {
	case IncreaseLock, DecreaseLock, IncreaseLedLock, DecreaseLedLock:
		return true
	}
	return false
}

func (f ActiveModifierFlag) LedLock() bool {
	return f.Type == IncreaseLedLock || f.Type == DecreaseLedLock
}

func (f ActiveModifierFlag) Sticky() bool {
	return f.Type == IncreaseSticky || f.Type == DecreaseSticky
}

// Manager tracks which modifier flags are pressed across devices.
// It is not safe for concurrent use.
type Manager struct {
	activeModifierFlags []ActiveModifierFlag
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) PushBackActiveModifierFlag(flag ActiveModifierFlag) {
	switch flag.Type {
	case Increase, IncreaseSticky, DecreaseSticky:
		m.activeModifierFlags = append(m.activeModifierFlags, flag)
		m.erasePairs()
	case Decrease:
		// A release without a press is dropped, so the count never goes
		// below zero.
		for i, f := range m.activeModifierFlags {
			if f.IsPaired(flag) {
				m.activeModifierFlags = append(m.activeModifierFlags[:i], m.activeModifierFlags[i+1:]...)
				return
			}
		}
	case IncreaseLock, DecreaseLock, IncreaseLedLock:
		m.eraseIf(func(f ActiveModifierFlag) bool {
			return f == flag
		})
		m.activeModifierFlags = append(m.activeModifierFlags, flag)
		m.erasePairs()
	case DecreaseLedLock:
		m.eraseIf(func(f ActiveModifierFlag) bool {
			return f.IsPaired(flag)
		})
	}
}

func (m *Manager) EraseAllActiveModifierFlags(deviceID types.DeviceID) {
	m.eraseIf(func(f ActiveModifierFlag) bool {
		return f.DeviceID == deviceID
	})
}

func (m *Manager) EraseAllActiveModifierFlagsExceptLockAndSticky(deviceID types.DeviceID) {
	m.eraseIf(func(f ActiveModifierFlag) bool {
		return f.DeviceID == deviceID && !f.AnyLock() && !f.Sticky()
	})
}

func (m *Manager) EraseCapsLockStickyModifierFlags() {
	m.eraseIf(func(f ActiveModifierFlag) bool {
		return f.Flag == types.ModifierFlagCapsLock && f.Sticky()
	})
}

func (m *Manager) EraseAllStickyModifierFlags() {
	m.eraseIf(func(f ActiveModifierFlag) bool {
		return f.Sticky()
	})
}

func (m *Manager) Reset() {
	m.activeModifierFlags = nil
}

// IsPressed uses the led lock state only if no other flags exist for
// the modifier.
func (m *Manager) IsPressed(flag types.ModifierFlag) bool {
	count := 0
	size := 0
	ledCount := 0
	for _, f := range m.activeModifierFlags {
		if f.Flag != flag {
			continue
		}
		if f.LedLock() {
			ledCount += f.Count()
		} else {
			count += f.Count()
			size++
		}
	}
	if size == 0 {
		return ledCount > 0
	}
	return count > 0
}

func (m *Manager) IsStickyActive(flag types.ModifierFlag) bool {
	count := 0
	for _, f := range m.activeModifierFlags {
		if f.Flag == flag && f.Sticky() {
			count += f.Count()
		}
	}
	return count > 0
}

func (m *Manager) GetActiveModifierFlags() []ActiveModifierFlag {
	return slices.Clone(m.activeModifierFlags)
}

func (m *Manager) LedLockSize(flag types.ModifierFlag) int {
	n := 0
	for _, f := range m.activeModifierFlags {
		if f.Flag == flag && f.LedLock() {
			n++
		}
	}
	return n
}

func (m *Manager) StickySize(flag types.ModifierFlag) int {
	n := 0
	for _, f := range m.activeModifierFlags {
		if f.Flag == flag && f.Sticky() {
			n++
		}
	}
	return n
}

func (m *Manager) MakeModifierFlags() mapset.Set[types.ModifierFlag] {
	flags := mapset.NewThreadUnsafeSet[types.ModifierFlag]()
	for _, flag := range types.AllModifierFlags {
		if m.IsPressed(flag) {
			flags.Add(flag)
		}
	}
	return flags
}

func (m *Manager) eraseIf(pred func(ActiveModifierFlag) bool) {
	kept := m.activeModifierFlags[:0]
	for _, f := range m.activeModifierFlags {
		if !pred(f) {
			kept = append(kept, f)
		}
	}
	m.activeModifierFlags = kept
}

func (m *Manager) erasePairs() {
	for {
		found := false
	outer:
		for i1 := 0; i1 < len(m.activeModifierFlags); i1++ {
			for i2 := i1 + 1; i2 < len(m.activeModifierFlags); i2++ {
				if m.activeModifierFlags[i1].IsPaired(m.activeModifierFlags[i2]) {
					m.activeModifierFlags = append(m.activeModifierFlags[:i2], m.activeModifierFlags[i2+1:]...)
					m.activeModifierFlags = append(m.activeModifierFlags[:i1], m.activeModifierFlags[i1+1:]...)
					found = true
					break outer
				}
			}
		}
		if !found {
			return
		}
	}
}
