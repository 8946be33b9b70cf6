package field

import "testing"

func TestResolveKind(t *testing.T) {
	cases := []struct {
		typeName string
		itemType string
		want     Kind
		ok       bool
	}{
		{"String", "", KindString, true},
		{"Number", "", KindNumber, true},
		{"Boolean", "", KindBoolean, true},
		{"Date", "", KindDate, true},
		{"SchemaDate", "", KindDate, true},
		{"File", "", KindFile, true},
		{"Image", "", KindImage, true},
		{"Email", "", KindEmail, true},
		{"Url", "", KindURL, true},
		{"ObjectId", "", KindIdentifier, true},
		{"captcha", "", KindCaptcha, true},
		{"password", "", KindPassword, true},
		{"hidden", "", KindHidden, true},
		{"Array", "Number", KindNumber, true},
		{"Array", "Mixed", KindString, true},
		{"Array", "", KindString, true},
		{"string", "", "", false},
		{"Mixed", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveKind(tc.typeName, tc.itemType)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ResolveKind(%q, %q) = %q, %v; want %q, %v", tc.typeName, tc.itemType, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTypeNamesResolve(t *testing.T) {
	for _, name := range TypeNames() {
		if _, ok := ResolveKind(name, ""); !ok {
			t.Errorf("type name %q does not resolve", name)
		}
	}
}
