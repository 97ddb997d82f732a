package actor

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		" Doctor ":  RoleDoctor,
		"pet_owner": RolePetOwner,
		"petowner":  RolePetOwner,
		"user":      RolePetOwner,
	}
	for in, want := range cases {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q,%v want %q", in, got, ok, want)
		}
	}

	if _, ok := ParseRole("root"); ok {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor(RoleAdmin)
	if !admin.ReadAll || !admin.MutateAll || !admin.ManageUsers {
		t.Fatalf("admin caps incomplete: %#v", admin)
	}

	doc := CapabilitiesFor(RoleDoctor)
	if doc.ReadAll || doc.ManageUsers || !doc.MutateAssigned || doc.MutateOwn {
		t.Fatalf("unexpected doctor caps: %#v", doc)
	}

	owner := CapabilitiesFor(RolePetOwner)
	if owner.ReadAll || !owner.MutateOwn || owner.MutateAssigned {
		t.Fatalf("unexpected owner caps: %#v", owner)
	}

	if (CapabilitiesFor("")) != (Capabilities{}) {
		t.Fatalf("expected empty caps for unknown role")
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleDoctor.Valid() {
		t.Fatalf("doctor should be valid")
	}
	if Role("user").Valid() {
		t.Fatalf("alias must not be a stored role")
	}
}
