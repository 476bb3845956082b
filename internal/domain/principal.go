package domain

// Principal is a caller identity supplied and authenticated by the host
type Principal string

// BurnPrincipal is the zero address; it can never hold a role
const BurnPrincipal Principal = "SP000000000000000000002Q6VF78"

// Valid reports whether p can be granted a role
func (p Principal) Valid() bool {
	return p != "" && p != BurnPrincipal
}

func (p Principal) String() string {
	return string(p)
}

// Capability is the privilege level of a caller
type Capability int

const (
	CapabilityPublic Capability = iota
	CapabilityManager
	CapabilityOwner
)

func (c Capability) String() string {
	switch c {
	case CapabilityOwner:
		return "owner"
	case CapabilityManager:
		return "manager"
	default:
		return "public"
	}
}

// AtLeast reports whether c grants the privileges of min
func (c Capability) AtLeast(min Capability) bool {
	return c >= min
}
