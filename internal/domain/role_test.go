package domain

import "testing"

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		roles    []Role
		required []Role
		want     bool
	}{
		{"author can submit", []Role{RoleAuthor}, RequiredRoles(IntentSubmit), true},
		{"author cannot approve", []Role{RoleAuthor}, RequiredRoles(IntentApprove), false},
		{"editor can approve", []Role{RoleEditor}, RequiredRoles(IntentApprove), true},
		{"editor cannot publish", []Role{RoleEditor}, RequiredRoles(IntentPublish), false},
		{"publisher can publish", []Role{RolePublisher}, RequiredRoles(IntentPublish), true},
		{"publisher cannot archive", []Role{RolePublisher}, RequiredRoles(IntentArchive), false},
		{"admin can restore", []Role{RoleAdmin}, RequiredRoles(IntentRestore), true},
		{"roles are additive", []Role{RoleAuthor, RolePublisher}, RequiredRoles(IntentPublish), true},
		{"no roles", nil, RequiredRoles(IntentSave), false},
		{"unknown intent requires nothing satisfiable", []Role{RoleAdmin}, RequiredRoles(Intent("delete")), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.roles, tc.required); got != tc.want {
				t.Errorf("Authorize(%v, %v) = %v, want %v", tc.roles, tc.required, got, tc.want)
			}
		})
	}
}

func TestAuthorizeActor_NilActor(t *testing.T) {
	if AuthorizeActor(nil, AuthorRoles) {
		t.Error("nil actor must never be authorized")
	}
	if !AuthorizeActor(&Actor{ID: "u1", Roles: []Role{RoleAdmin}}, AdminRoles) {
		t.Error("admin actor should be authorized")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" editor "); !ok || r != RoleEditor {
		t.Errorf("ParseRole(editor) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("owner"); ok {
		t.Error("owner is not a role")
	}
}
