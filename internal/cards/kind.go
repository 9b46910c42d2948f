package cards

import "fmt"

// Kind identifies a playable card. The set is closed; the zero value means
// "no card".
type Kind uint8

const (
	KindNone Kind = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Defend
	EnergyRecovery
	AttackCross
	AttackForward
	AttackArea
	AttackDiagonal

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:       "",
	MoveUp:         "MOVE_UP",
	MoveDown:       "MOVE_DOWN",
	MoveLeft:       "MOVE_LEFT",
	MoveRight:      "MOVE_RIGHT",
	Defend:         "DEFEND",
	EnergyRecovery: "ENERGY_RECOVERY",
	AttackCross:    "ATTACK_CROSS",
	AttackForward:  "ATTACK_FORWARD",
	AttackArea:     "ATTACK_AREA",
	AttackDiagonal: "ATTACK_DIAGONAL",
}

// Valid reports whether k is a real card.
func (k Kind) Valid() bool {
	return k > KindNone && k < kindCount
}

// String returns the wire name (e.g. "ATTACK_CROSS").
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a wire name to its Kind.
func ParseKind(s string) (Kind, error) {
	for k := MoveUp; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown card %q", s)
}

// MarshalText encodes the wire name. KindNone encodes as an empty string.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("cannot encode card %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a wire name.
func (k *Kind) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = KindNone
		return nil
	}
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// All returns every card kind in catalog order.
func All() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := MoveUp; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
