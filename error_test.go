/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/
package verrors

import (
	"testing"

	"github.com/acronis/go-stacktrace"
	"github.com/stretchr/testify/require"
)

func TestValidationError_EqualityIgnoresPayload(t *testing.T) {
	a := New(Type, MustPath("a"), MustPath("a", "type"), "string", 1, "extra")
	b := New(Type, MustPath("a"), MustPath("a", "type"), "integer", "x")
	c := New(Type, MustPath("a"), MustPath("b", "type"), "string", 1)
	d := New(Nullable, MustPath("a"), MustPath("a", "type"), "string", 1)

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
	require.False(t, a.Equal(c))
	require.NotEqual(t, a.Hash(), c.Hash())
	require.False(t, a.Equal(d))
	require.NotEqual(t, a.Hash(), d.Hash())
}

func TestValidationError_HashDistinguishesSegmentKinds(t *testing.T) {
	a := New(Type, MustPath("items", 1), nil, nil, nil)
	b := New(Type, MustPath("items", "1"), nil, nil, nil)
	require.False(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestErrorList_Sort(t *testing.T) {
	errs := ErrorList{
		New(Type, MustPath("b"), MustPath("b", "type"), nil, nil),
		New(MinLength, MustPath("a", "x"), MustPath("a", "minlength"), nil, nil),
		New(Type, MustPath("a"), MustPath("a", "type"), nil, nil),
		New(Empty, MustPath("a"), MustPath("a", "empty"), nil, nil),
		New(Type, MustPath("a", 0), MustPath("a", "type"), nil, nil),
	}
	errs.Sort()

	got := make([]string, len(errs))
	for i, e := range errs {
		got[i] = e.DocumentPath.String() + "|" + e.SchemaPath.String()
	}
	require.Equal(t, []string{"a|a.empty", "a|a.type", "a.0|a.type", "a.x|a.minlength", "b|b.type"}, got)
}

func TestValidationError_DerivedFacts(t *testing.T) {
	plain := typeError("string", "items", 1, "name")
	field, ok := plain.Field()
	require.True(t, ok)
	require.Equal(t, Name("name"), field)
	require.False(t, plain.IsGroupError())
	require.False(t, plain.IsLogicError())
	require.Nil(t, plain.ChildErrors())
	require.Nil(t, plain.DefinitionsErrors())

	root := New(DocumentFormat, Path{}, Path{}, nil, nil, "not-a-dict")
	_, ok = root.Field()
	require.False(t, ok)

	group := addressSchemaError()
	require.True(t, group.IsGroupError())
	require.False(t, group.IsLogicError())
	require.Len(t, group.ChildErrors(), 2)
	require.Nil(t, group.DefinitionsErrors())

	coerce := New(CoercionFailed, MustPath("age"), MustPath("age", "coerce"), "int", "x", "boom")
	require.True(t, coerce.IsNormalizationError())
	require.Equal(t, FamilyNormalization, coerce.Family())
}

func TestValidationError_DefinitionsErrors(t *testing.T) {
	e := anyOfPriceError()
	require.True(t, e.IsLogicError())

	buckets := e.DefinitionsErrors()
	require.Equal(t, 2, buckets.Len())

	first, ok := buckets.Get(Index(0))
	require.True(t, ok)
	require.Equal(t, []Code{MinValue.Code, Type.Code}, first.Codes())

	second, ok := buckets.Get(Index(1))
	require.True(t, ok)
	require.Equal(t, []Code{MaxValue.Code, Type.Code}, second.Codes())

	require.Equal(t, Index(0), buckets.Oldest().Key)
}

func TestValidationError_CloneIsDeep(t *testing.T) {
	orig := addressSchemaError()
	clone := orig.Clone()

	clone.DocumentPath[0] = Name("changed")
	clone.ChildErrors()[0].DocumentPath[0] = Name("changed")
	clone.Info.(*Group).Children = append(clone.ChildErrors(), typeError("string", "x"))

	require.Equal(t, "address", orig.DocumentPath.String())
	require.Equal(t, "address.zip", orig.ChildErrors()[0].DocumentPath.String())
	require.Len(t, orig.ChildErrors(), 2)
}

func TestValidationError_Error(t *testing.T) {
	require.Equal(t, "items.1.name: type (0x24)", typeError("string", "items", 1, "name").Error())
	require.Equal(t, "(root): 0x21", New(DocumentFormat, Path{}, Path{}, nil, nil).Error())
	require.Equal(t,
		"ValidationError(document_path=['a'],schema_path=['a', 'type'],code=0x24,constraint=string,value=1,info=[])",
		New(Type, MustPath("a"), MustPath("a", "type"), "string", 1).String())
}

func TestErrorList_Queries(t *testing.T) {
	errs := ErrorList{typeError("string", "a"), minValueError(1, 0, "b")}

	require.True(t, errs.Has(Type))
	require.True(t, errs.Has(MinValue))
	require.False(t, errs.Has(MaxValue))

	e, ok := errs.Get(MinValue)
	require.True(t, ok)
	require.Equal(t, "b", e.DocumentPath.String())
}

func TestErrorList_Unique(t *testing.T) {
	a := typeError("string", "a")
	dup := New(Type, MustPath("a"), MustPath("a", "type"), "integer", 3)
	b := typeError("string", "b")

	require.Equal(t, ErrorList{a, b}, ErrorList{a, dup, b}.Unique())
}

func TestErrorList_Err(t *testing.T) {
	require.NoError(t, ErrorList{}.Err())

	err := ErrorList{typeError("string", "a"), addressSchemaError()}.Err()
	require.Error(t, err)

	var st *stacktrace.StackTrace
	require.ErrorAs(t, err, &st)
	require.Len(t, st.List, 2)
}
