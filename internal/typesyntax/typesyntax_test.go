package typesyntax_test

import (
	"testing"

	"github.com/mago-go/phrix/internal/typesyntax"
)

func TestParseBareCallable(t *testing.T) {
	ct, err := typesyntax.ParseCallableType("callable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Kind != typesyntax.Callable {
		t.Fatalf("expected Callable, got %v", ct.Kind)
	}
	if ct.Spec != nil {
		t.Fatalf("expected no parameter spec for the bare keyword form")
	}
}

func TestParsePureClosureWithSignature(t *testing.T) {
	ct, err := typesyntax.ParseCallableType("pure Closure(int, string=, float...): void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ct.Kind.IsPure() || !ct.Kind.IsClosure() {
		t.Fatalf("expected a pure Closure kind, got %v", ct.Kind)
	}
	if ct.Spec == nil {
		t.Fatalf("expected a parameter spec")
	}
	if len(ct.Spec.Parameters) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(ct.Spec.Parameters))
	}
	if ct.Spec.Parameters[1].Optional == nil {
		t.Fatalf("expected the second parameter to be optional")
	}
	if ct.Spec.Parameters[2].Variadic == nil {
		t.Fatalf("expected the third parameter to be variadic")
	}
	if ct.Spec.Parameters[0].Comma == nil || ct.Spec.Parameters[1].Comma == nil {
		t.Fatalf("expected the first two parameters to carry a trailing comma span")
	}
	if ct.Spec.Parameters[2].Comma != nil {
		t.Fatalf("expected the last parameter to have no trailing comma span")
	}
	if ct.Spec.Return == nil || ct.Spec.Return.String() != "void" {
		t.Fatalf("expected a return type of void, got %v", ct.Spec.Return)
	}
}

func TestParseNullableNestedCallable(t *testing.T) {
	ct, err := typesyntax.ParseCallableType("callable(?Foo\\Bar): ?int")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	param := ct.Spec.Parameters[0]
	nullable, ok := param.Type.(typesyntax.NullableType)
	if !ok {
		t.Fatalf("expected a NullableType parameter, got %T", param.Type)
	}
	named, ok := nullable.Inner.(typesyntax.NamedType)
	if !ok || named.Name != "Foo\\Bar" {
		t.Fatalf("expected inner type Foo\\Bar, got %+v", nullable.Inner)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"callable",
		"pure callable",
		"Closure(int, string=): bool",
		"pure Closure(int...): void",
	} {
		ct, err := typesyntax.ParseCallableType(src)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", src, err)
		}
		if got := ct.String(); got != src {
			t.Fatalf("round-trip mismatch: parse(%q).String() = %q", src, got)
		}
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := typesyntax.ParseCallableType("callable garbage")
	if err == nil {
		t.Fatalf("expected an error for trailing input after a complete callable type")
	}
}

func TestParseRejectsUnknownKeyword(t *testing.T) {
	_, err := typesyntax.ParseCallableType("function(int): void")
	if err == nil {
		t.Fatalf("expected an error for a non-callable-type keyword")
	}
}

func TestParseRejectsUnclosedParameterList(t *testing.T) {
	_, err := typesyntax.ParseCallableType("callable(int")
	if err == nil {
		t.Fatalf("expected an error for an unclosed parameter list")
	}
}

func TestCallableTypeSpanCoversEntireAnnotation(t *testing.T) {
	src := "pure Closure(int, string=, float...): void"
	ct, err := typesyntax.ParseCallableType(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp := ct.Span()
	if sp.Start.Offset != 0 || sp.End.Offset != len(src) {
		t.Fatalf("expected span to cover the whole annotation [0, %d), got [%d, %d)", len(src), sp.Start.Offset, sp.End.Offset)
	}
	if got := ct.Keyword.Len(); got != len("pure Closure") {
		t.Fatalf("expected the keyword span to cover %q, got length %d", "pure Closure", got)
	}
}

func TestCallableTypeParameterSpanIncludesComma(t *testing.T) {
	ct, err := typesyntax.ParseCallableType("callable(int, string)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := ct.Spec.Parameters[0]
	if first.Comma == nil {
		t.Fatalf("expected a comma span on the first parameter")
	}
	if got, want := first.Span().End.Offset, first.Comma.End.Offset; got != want {
		t.Fatalf("expected the parameter's span to extend through its comma, got end %d want %d", got, want)
	}
}
