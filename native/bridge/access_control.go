package bridge

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

// Role is one of the four access-control roles recognised by the bridge.
type Role int

const (
	// RoleAdmin governs treasury operations, parameter setters, and role
	// management. Bootstrapped to the instantiator.
	RoleAdmin Role = iota
	// RoleRelayer is authorized to submit ReverseSwap/Refund/RefundInFull
	// and to bump the relay eon.
	RoleRelayer
	// RoleApprover may adjust the reverse aggregated allowance up to the
	// configured approver cap without full Admin authority.
	RoleApprover
	// RoleMonitor may trigger (but not lift) a pause.
	RoleMonitor
)

// roleNames maps each Role to its stable wire/storage string, per §4.1.
var roleNames = map[Role]string{
	RoleAdmin:    "ADMIN_ROLE",
	RoleRelayer:  "RELAYER_ROLE",
	RoleApprover: "APPROVER_ROLE",
	RoleMonitor:  "MONITOR_ROLE",
}

// String returns the role's stable wire name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN_ROLE"
}

// ParseRole decodes a wire role string back into a Role.
func ParseRole(name string) (Role, error) {
	for role, roleName := range roleNames {
		if roleName == name {
			return role, nil
		}
	}
	return 0, ErrUnknownRole
}

// AccessControl maintains the (address, role) membership set backed by a
// KVStore. Each role's members are stored as a single RLP-encoded sorted
// list, directly adapting the teacher's Manager.SetRole/RemoveRole/HasRole
// (core/state/manager.go), generalized from a single string role key to the
// bridge's fixed four-role enumeration.
type AccessControl struct {
	store storage.KVStore
}

// NewAccessControl constructs an AccessControl bound to store.
func NewAccessControl(store storage.KVStore) *AccessControl {
	return &AccessControl{store: store}
}

func (ac *AccessControl) members(role Role) ([][]byte, error) {
	data, ok, err := ac.store.Get(roleKey(role.String()))
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var members [][]byte
	if err := rlp.DecodeBytes(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (ac *AccessControl) setMembers(role Role, members [][]byte) error {
	if len(members) == 0 {
		return ac.store.Delete(roleKey(role.String()))
	}
	encoded, err := rlp.EncodeToBytes(members)
	if err != nil {
		return err
	}
	return ac.store.Set(roleKey(role.String()), encoded)
}

// HasRole reports whether addr currently holds role. A storage error is
// treated as "role absent", matching the teacher's HasRole best-effort
// semantics (core/state/manager.go).
func (ac *AccessControl) HasRole(addr Address, role Role) bool {
	members, err := ac.members(role)
	if err != nil {
		return false
	}
	needle := addr.Bytes()
	for _, member := range members {
		if bytes.Equal(member, needle) {
			return true
		}
	}
	return false
}

// AddRole grants role to addr, failing with ErrAlreadyHasRole if already
// present.
func (ac *AccessControl) AddRole(addr Address, role Role) error {
	members, err := ac.members(role)
	if err != nil {
		return err
	}
	needle := addr.Bytes()
	for _, member := range members {
		if bytes.Equal(member, needle) {
			return ErrAlreadyHasRole
		}
	}
	members = append(members, needle)
	sort.Slice(members, func(i, j int) bool { return bytes.Compare(members[i], members[j]) < 0 })
	return ac.setMembers(role, members)
}

// RevokeRole removes role from addr, failing with ErrDoesntHaveRole if
// absent.
func (ac *AccessControl) RevokeRole(addr Address, role Role) error {
	members, err := ac.members(role)
	if err != nil {
		return err
	}
	needle := addr.Bytes()
	filtered := make([][]byte, 0, len(members))
	removed := false
	for _, member := range members {
		if bytes.Equal(member, needle) {
			removed = true
			continue
		}
		filtered = append(filtered, member)
	}
	if !removed {
		return ErrDoesntHaveRole
	}
	return ac.setMembers(role, filtered)
}
