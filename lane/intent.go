package lane

import "strings"

// Key is a keyboard key name as reported by ebiten.Key.String ("A", "ArrowLeft", "Space").
type Key string

// KeySet is a snapshot of the keys held during one tick.
type KeySet map[Key]struct{}

func NewKeySet(keys ...Key) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Any reports whether at least one of keys is held.
func (s KeySet) Any(keys []Key) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// Bindings maps actions to the keys that trigger them.
type Bindings struct {
	Left  []Key
	Right []Key
	Jump  []Key
	Roll  []Key
}

func DefaultBindings() Bindings {
	return Bindings{
		Left:  []Key{"ArrowLeft", "A"},
		Right: []Key{"ArrowRight", "D"},
		Jump:  []Key{"ArrowUp", "W", "Space"},
		Roll:  []Key{"ArrowDown", "S"},
	}
}

// Keys returns every bound key once, in binding order.
func (b Bindings) Keys() []Key {
	seen := make(map[Key]struct{})
	var out []Key
	for _, group := range [][]Key{b.Left, b.Right, b.Jump, b.Roll} {
		for _, k := range group {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Intent is the per-tick reading of held input. Lateral and vertical bits combine freely.
type Intent uint8

const (
	IntentMoveLeft Intent = 1 << iota
	IntentMoveRight
	IntentJump
	IntentRoll

	IntentNone Intent = 0
)

func (i Intent) Has(flag Intent) bool {
	return i&flag != 0
}

// Lateral returns only the lane-changing part of the intent.
func (i Intent) Lateral() Intent {
	return i & (IntentMoveLeft | IntentMoveRight)
}

func (i Intent) String() string {
	if i == IntentNone {
		return "none"
	}
	var parts []string
	if i.Has(IntentMoveLeft) {
		parts = append(parts, "left")
	}
	if i.Has(IntentMoveRight) {
		parts = append(parts, "right")
	}
	if i.Has(IntentJump) {
		parts = append(parts, "jump")
	}
	if i.Has(IntentRoll) {
		parts = append(parts, "roll")
	}
	return strings.Join(parts, "+")
}

// Classify turns a held-key snapshot into an Intent. Left and right held
// together cancel out, leaving no lateral bit.
func Classify(held KeySet, b Bindings) Intent {
	intent := IntentNone

	left := held.Any(b.Left)
	right := held.Any(b.Right)
	switch {
	case left && !right:
		intent |= IntentMoveLeft
	case right && !left:
		intent |= IntentMoveRight
	}

	if held.Any(b.Jump) {
		intent |= IntentJump
	}
	if held.Any(b.Roll) {
		intent |= IntentRoll
	}
	return intent
}
