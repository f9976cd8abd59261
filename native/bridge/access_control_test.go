package bridge

import (
	"errors"
	"testing"

	"github.com/fetchai/fetch-ethereum-bridge-v1/storage"
)

func testAddress(t *testing.T, b byte) Address {
	t.Helper()
	raw := make([]byte, 20)
	raw[19] = b
	addr, err := NewAddress(raw)
	if err != nil {
		t.Fatalf("NewAddress: %v", err)
	}
	return addr
}

func TestAccessControlGrantRevoke(t *testing.T) {
	ac := NewAccessControl(storage.NewMemStore())
	admin := testAddress(t, 1)

	if ac.HasRole(admin, RoleAdmin) {
		t.Fatalf("expected no role before grant")
	}
	if err := ac.AddRole(admin, RoleAdmin); err != nil {
		t.Fatalf("AddRole: %v", err)
	}
	if !ac.HasRole(admin, RoleAdmin) {
		t.Fatalf("expected role after grant")
	}
	if err := ac.AddRole(admin, RoleAdmin); !errors.Is(err, ErrAlreadyHasRole) {
		t.Fatalf("expected ErrAlreadyHasRole, got %v", err)
	}
	if err := ac.RevokeRole(admin, RoleAdmin); err != nil {
		t.Fatalf("RevokeRole: %v", err)
	}
	if ac.HasRole(admin, RoleAdmin) {
		t.Fatalf("expected no role after revoke")
	}
	if err := ac.RevokeRole(admin, RoleAdmin); !errors.Is(err, ErrDoesntHaveRole) {
		t.Fatalf("expected ErrDoesntHaveRole, got %v", err)
	}
}

func TestAccessControlRolesAreIndependent(t *testing.T) {
	ac := NewAccessControl(storage.NewMemStore())
	relayer := testAddress(t, 2)

	if err := ac.AddRole(relayer, RoleRelayer); err != nil {
		t.Fatalf("AddRole relayer: %v", err)
	}
	if ac.HasRole(relayer, RoleAdmin) {
		t.Fatalf("relayer should not implicitly hold admin")
	}
	if !ac.HasRole(relayer, RoleRelayer) {
		t.Fatalf("expected relayer role granted")
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleRelayer, RoleApprover, RoleMonitor} {
		parsed, err := ParseRole(role.String())
		if err != nil {
			t.Fatalf("ParseRole(%s): %v", role, err)
		}
		if parsed != role {
			t.Fatalf("round trip mismatch: %v != %v", parsed, role)
		}
	}
	if _, err := ParseRole("NOT_A_ROLE"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
