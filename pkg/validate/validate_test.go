package validate_test

import (
	"testing"

	"github.com/voltframework/volt/pkg/validate"
)

type signupInput struct {
	Name     string `json:"name" validate:"required,alpha_dash,min=2,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"gte=18,lte=120"`
	Role     string `json:"role" validate:"required,in=admin,user,moderator"`
	Website  string `json:"website" validate:"nullable,url"`
	Password string `json:"password" validate:"required,min=8,confirmed"`
	Confirm  string `json:"password_confirmation"`
}

func valid() signupInput {
	return signupInput{
		Name:     "jane_doe",
		Email:    "jane@example.com",
		Age:      30,
		Role:     "user",
		Password: "supersecret",
		Confirm:  "supersecret",
	}
}

func TestValidInputPasses(t *testing.T) {
	if errs := validate.Struct(valid()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestFieldFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*signupInput)
		field  string
	}{
		{"missing name", func(in *signupInput) { in.Name = "" }, "name"},
		{"name too short", func(in *signupInput) { in.Name = "j" }, "name"},
		{"name bad chars", func(in *signupInput) { in.Name = "jane doe!" }, "name"},
		{"bad email", func(in *signupInput) { in.Email = "not-an-email" }, "email"},
		{"too young", func(in *signupInput) { in.Age = 12 }, "age"},
		{"unknown role", func(in *signupInput) { in.Role = "root" }, "role"},
		{"bad url", func(in *signupInput) { in.Website = "ftp://files" }, "website"},
		{"short password", func(in *signupInput) { in.Password, in.Confirm = "short", "short" }, "password"},
		{"confirmation mismatch", func(in *signupInput) { in.Confirm = "different" }, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.mutate(&in)
			errs := validate.Struct(&in)
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("expected error on %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	in := valid()
	in.Website = ""
	if errs := validate.Struct(in); len(errs) != 0 {
		t.Errorf("nullable empty field should pass, got %v", errs)
	}
}

func TestPointerAndNonStructInputs(t *testing.T) {
	in := valid()
	if errs := validate.Struct(&in); len(errs) != 0 {
		t.Errorf("pointer input: %v", errs)
	}
	if errs := validate.Struct("not a struct"); len(errs) != 0 {
		t.Errorf("non-struct input should return no errors, got %v", errs)
	}
}

func TestMiscRules(t *testing.T) {
	type misc struct {
		ID    string `json:"id" validate:"required,uuid"`
		Flag  string `json:"flag" validate:"boolean"`
		Count string `json:"count" validate:"integer"`
		Code  string `json:"code" validate:"size=4"`
		Level int    `json:"level" validate:"between=1,5"`
	}

	good := misc{
		ID:    "123e4567-e89b-12d3-a456-426614174000",
		Flag:  "true",
		Count: "42",
		Code:  "ab12",
		Level: 3,
	}
	if errs := validate.Struct(good); len(errs) != 0 {
		t.Fatalf("good input: %v", errs)
	}

	bad := misc{ID: "nope", Flag: "maybe", Count: "4.2", Code: "abc", Level: 9}
	errs := validate.Struct(bad)
	for _, f := range []string{"id", "flag", "count", "code", "level"} {
		if _, ok := errs[f]; !ok {
			t.Errorf("expected error on %q, got %v", f, errs)
		}
	}
}
