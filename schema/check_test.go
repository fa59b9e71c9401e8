package schema

import (
	"strings"
	"testing"
)

func TestEmbeddedSchemaPassesCheck(t *testing.T) {
	if err := Check(Mock); err != nil {
		t.Fatalf("embedded schema failed structural check: %v", err)
	}
}

func TestEmbeddedSchemaDeclaresOperations(t *testing.T) {
	for _, op := range []string{"user(id: ID)", "employee(id: ID)", "company(id: ID)", "allCompanies"} {
		if !strings.Contains(Mock, op) {
			t.Errorf("embedded schema missing Query operation %q", op)
		}
	}
}

func TestCheckProblems(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		wantIn string
	}{
		{
			name:   "unannotated scalar",
			src:    "type User {\n  name: String\n}",
			wantIn: "User.name: scalar field has no @fake or @examples directive",
		},
		{
			name:   "unknown fake kind",
			src:    "type User {\n  name: String @fake(type: shoeSize)\n}",
			wantIn: `unknown fake kind "shoeSize"`,
		},
		{
			name:   "empty examples",
			src:    "type User {\n  role: String @examples(values: [])\n}",
			wantIn: "@examples has an empty value list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.src)
			if err == nil {
				t.Fatal("expected check failure, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}
}

func TestCheckExemptions(t *testing.T) {
	src := strings.Join([]string{
		"type Query {",
		"  user(id: ID): User",
		"}",
		"type User {",
		"  id: ID",
		"  company: Company",
		"  friends: [User]",
		"  name: String @fake(type: fullName)",
		"}",
	}, "\n")

	if err := Check(src); err != nil {
		t.Fatalf("ID, object, and Query fields should not need directives: %v", err)
	}
}
