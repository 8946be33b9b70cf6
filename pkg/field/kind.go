package field

import "strings"

// Kind is the closed set of semantic field kinds. Each kind owns a parse
// rule and a default widget.
type Kind string

const (
	KindString     Kind = "string"
	KindPassword   Kind = "password"
	KindCaptcha    Kind = "captcha"
	KindEmail      Kind = "email"
	KindURL        Kind = "url"
	KindNumber     Kind = "number"
	KindBoolean    Kind = "boolean"
	KindDate       Kind = "date"
	KindFile       Kind = "file"
	KindImage      Kind = "image"
	KindIdentifier Kind = "identifier"
	KindHidden     Kind = "hidden"
)

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindPassword, KindCaptcha, KindEmail, KindURL, KindNumber,
		KindBoolean, KindDate, KindFile, KindImage, KindIdentifier, KindHidden:
		return true
	}
	return false
}

// TypeArray is the declared type name of list properties. Arrays resolve
// through their item type.
const TypeArray = "Array"

// Declared schema type names mapped to kinds. Lookups are exact.
var typeKinds = map[string]Kind{
	"String":     KindString,
	"Number":     KindNumber,
	"Boolean":    KindBoolean,
	"Date":       KindDate,
	"SchemaDate": KindDate,
	"File":       KindFile,
	"Image":      KindImage,
	"Email":      KindEmail,
	"Url":        KindURL,
	"ObjectId":   KindIdentifier,
	"captcha":    KindCaptcha,
	"password":   KindPassword,
	"hidden":     KindHidden,
}

// ResolveKind maps a declared type name to a kind. Arrays resolve through
// itemType; an array whose item type is unknown becomes a string field.
func ResolveKind(typeName, itemType string) (Kind, bool) {
	typeName = strings.TrimSpace(typeName)
	if typeName == TypeArray {
		if kind, ok := typeKinds[strings.TrimSpace(itemType)]; ok {
			return kind, true
		}
		return KindString, true
	}
	kind, ok := typeKinds[typeName]
	return kind, ok
}

// TypeNames lists the declared type names ResolveKind accepts.
func TypeNames() []string {
	names := make([]string, 0, len(typeKinds)+1)
	for name := range typeKinds {
		names = append(names, name)
	}
	names = append(names, TypeArray)
	return names
}
