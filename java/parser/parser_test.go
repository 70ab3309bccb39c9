package parser

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	node, err := ParseCompilationUnit(strings.NewReader(src), WithFile("Test.java")).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return node
}

func TestParseFixture(t *testing.T) {
	data, err := os.ReadFile("../testdata/simple.java")
	if err != nil {
		t.Fatal(err)
	}
	node, err := ParseCompilationUnit(strings.NewReader(string(data))).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	if node.FirstChildOfKind(KindPackageDecl) == nil {
		t.Error("missing package declaration")
	}
	if got := len(node.ChildrenOfKind(KindImportDecl)); got != 2 {
		t.Errorf("imports = %d, want 2", got)
	}

	var kinds []NodeKind
	var names []string
	for _, child := range node.Children {
		if child.Kind.IsTypeDecl() {
			kinds = append(kinds, child.Kind)
			names = append(names, child.Name())
		}
	}
	wantNames := []string{"Point", "Drawable", "Shape", "Status", "Main"}
	wantKinds := []NodeKind{KindClassDecl, KindInterfaceDecl, KindClassDecl, KindEnumDecl, KindClassDecl}
	if strings.Join(names, ",") != strings.Join(wantNames, ",") {
		t.Fatalf("declarations = %v, want %v", names, wantNames)
	}
	for i := range kinds {
		if kinds[i] != wantKinds[i] {
			t.Errorf("%s kind = %v, want %v", names[i], kinds[i], wantKinds[i])
		}
	}
}

func TestParseClassMembers(t *testing.T) {
	node := parse(t, `
class Point {
    private double x, y[];
    public static final String VERSION = "1.0.0";
    public Point(double x, double y) { this.x = x; }
    public double getX() { return x; }
    abstract <T> T pick(T... items) throws Exception, Error;
    static { init(); }
    { counter++; }
    ;
}`)

	class := node.FirstChildOfKind(KindClassDecl)
	if class == nil {
		t.Fatal("no class declaration")
	}
	body := class.FirstChildOfKind(KindClassBody)

	var kinds []string
	for _, member := range body.Children {
		kinds = append(kinds, member.Kind.String())
	}
	want := "FieldDecl,FieldDecl,ConstructorDecl,MethodDecl,MethodDecl,Initializer,Initializer"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("members = %s, want %s", got, want)
	}

	field := body.Children[0]
	if got := len(field.ChildrenOfKind(KindVariableDeclarator)); got != 2 {
		t.Errorf("declarators = %d, want 2", got)
	}

	pick := body.Children[4]
	if pick.FirstChildOfKind(KindTypeParameters) == nil {
		t.Error("pick: missing type parameters")
	}
	params := pick.FirstChildOfKind(KindParameters).ChildrenOfKind(KindParameter)
	if len(params) != 1 || params[0].FirstChildOfKind(KindVarargs) == nil {
		t.Errorf("pick: want one varargs parameter, got %v", params)
	}
	if throws := pick.FirstChildOfKind(KindThrowsList); throws == nil || len(throws.Children) != 2 {
		t.Errorf("pick: want two thrown types")
	}
	if pick.FirstChildOfKind(KindBlock) != nil {
		t.Error("pick: abstract method should have no body")
	}
}

func TestParseClauses(t *testing.T) {
	node := parse(t, `
public abstract class Shape<T extends Comparable<T>> extends Base<T> implements Drawable, java.io.Serializable {}
interface Both extends A, B<String> {}
enum Color implements Named { RED, GREEN; }
`)

	decls := node.Children
	if len(decls) != 3 {
		t.Fatalf("declarations = %d, want 3", len(decls))
	}

	shape := decls[0]
	if shape.FirstChildOfKind(KindTypeParameters) == nil {
		t.Error("Shape: missing type parameters")
	}
	if ext := shape.FirstChildOfKind(KindExtendsClause); ext == nil || len(ext.Children) != 1 {
		t.Error("Shape: want one extends type")
	}
	if impl := shape.FirstChildOfKind(KindImplementsClause); impl == nil || len(impl.Children) != 2 {
		t.Error("Shape: want two implemented types")
	}

	both := decls[1]
	if ext := both.FirstChildOfKind(KindExtendsClause); ext == nil || len(ext.Children) != 2 {
		t.Error("Both: want two extended interfaces")
	}

	color := decls[2]
	if impl := color.FirstChildOfKind(KindImplementsClause); impl == nil || len(impl.Children) != 1 {
		t.Error("Color: want one implemented interface")
	}
	constants := color.FirstChildOfKind(KindClassBody).ChildrenOfKind(KindEnumConstant)
	if len(constants) != 2 || constants[0].Name() != "RED" || constants[1].Name() != "GREEN" {
		t.Errorf("Color constants = %v", constants)
	}
}

func TestParseEnumBodies(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		constants []string
		members   int
	}{
		{"plain", "enum S { OK, ERROR }", []string{"OK", "ERROR"}, 0},
		{"trailing comma", "enum S { OK, ERROR, }", []string{"OK", "ERROR"}, 0},
		{"with arguments", `enum S { OK(200, "ok"), ERROR(500, "err") { int code() { return 1; } }; }`, []string{"OK", "ERROR"}, 0},
		{"with members", "enum S { A, B; private final int v = 0; int v() { return v; } }", []string{"A", "B"}, 2},
		{"annotated constant", "enum S { @Deprecated OLD, NEW }", []string{"OLD", "NEW"}, 0},
		{"empty", "enum S { }", nil, 0},
		{"only members", "enum S { ; static void f() {} }", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := parse(t, tt.src)
			body := node.FirstChildOfKind(KindEnumDecl).FirstChildOfKind(KindClassBody)
			var got []string
			members := 0
			for _, child := range body.Children {
				if child.Kind == KindEnumConstant {
					got = append(got, child.Name())
				} else {
					members++
				}
			}
			if strings.Join(got, ",") != strings.Join(tt.constants, ",") {
				t.Errorf("constants = %v, want %v", got, tt.constants)
			}
			if members != tt.members {
				t.Errorf("members = %d, want %d", members, tt.members)
			}
		})
	}
}

func TestParseGenericsClosing(t *testing.T) {
	node := parse(t, `class A {
    Map<String, List<Integer>> a;
    List<List<List<String>>> b = new ArrayList<List<List<String>>>(), c;
    Map<String, Integer> d = new HashMap<String, Integer>();
}`)
	body := node.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindClassBody)
	if len(body.Children) != 3 {
		t.Fatalf("members = %d, want 3", len(body.Children))
	}
	if got := len(body.Children[1].ChildrenOfKind(KindVariableDeclarator)); got != 2 {
		t.Errorf("b, c declarators = %d, want 2", got)
	}
	if got := len(body.Children[2].ChildrenOfKind(KindVariableDeclarator)); got != 1 {
		t.Errorf("d declarators = %d, want 1", got)
	}
}

func TestParseInitializerArrayTypeArguments(t *testing.T) {
	node := parse(t, `class A {
    java.util.Map<String, String[]> m = new java.util.HashMap<String, String[]>();
    java.util.Map<String, int[][]> n = new java.util.HashMap<String, int[][]>(), o[] = null, p;
}`)
	body := node.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindClassBody)
	if len(body.Children) != 2 {
		t.Fatalf("members = %d, want 2", len(body.Children))
	}
	if got := len(body.Children[0].ChildrenOfKind(KindVariableDeclarator)); got != 1 {
		t.Errorf("m declarators = %d, want 1", got)
	}
	if got := len(body.Children[1].ChildrenOfKind(KindVariableDeclarator)); got != 3 {
		t.Errorf("n, o, p declarators = %d, want 3", got)
	}
}

func TestNodeStringWithPositions(t *testing.T) {
	node := parse(t, "class A {}")
	if got := node.String(); !strings.HasPrefix(got, "CompilationUnit\n  ClassDecl\n") || !strings.Contains(got, "\n    Identifier A\n") {
		t.Errorf("String() = %q", got)
	}
	if got := node.StringWithPositions(); !strings.HasPrefix(got, "CompilationUnit [1:1-") || !strings.Contains(got, "  Identifier [1:7-") {
		t.Errorf("StringWithPositions() = %q", got)
	}
}

func TestParseNestedTypes(t *testing.T) {
	node := parse(t, `class Outer {
    static class Inner { void f() {} }
    interface Callback { void call(); }
    enum Mode { ON, OFF }
}`)
	body := node.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindClassBody)
	var kinds []string
	for _, child := range body.Children {
		kinds = append(kinds, child.Kind.String()+":"+child.Name())
	}
	want := "ClassDecl:Inner,InterfaceDecl:Callback,EnumDecl:Mode"
	if got := strings.Join(kinds, ","); got != want {
		t.Errorf("nested = %s, want %s", got, want)
	}
}

func TestParseAnnotationsAreOpaque(t *testing.T) {
	node := parse(t, `@SuppressWarnings({"a", "b"})
public class A {
    @Override
    public String toString() { return ""; }
    @Inject @Named(value = "x") private Service s;
}`)
	class := node.FirstChildOfKind(KindClassDecl)
	mods := class.FirstChildOfKind(KindModifiers)
	if len(mods.ChildrenOfKind(KindAnnotation)) != 1 || len(mods.ChildrenOfKind(KindModifier)) != 1 {
		t.Errorf("class modifiers = %v", mods)
	}
	body := class.FirstChildOfKind(KindClassBody)
	if len(body.Children) != 2 {
		t.Fatalf("members = %d, want 2", len(body.Children))
	}
}

func TestParseSkipsBodies(t *testing.T) {
	node := parse(t, `class A {
    void f() {
        Runnable r = () -> { if (x) { y(); } };
        String s = "}";
        char c = '{';
        class Local { }
    }
    int g() { return new int[] {1, 2}[0]; }
}`)
	body := node.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindClassBody)
	if len(body.Children) != 2 {
		t.Fatalf("members = %d, want 2", len(body.Children))
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		line     int
		column   int
		expected string
	}{
		{"missing name", "class { }", 1, 7, "identifier"},
		{"missing body", "class A", 1, 8, "'{'"},
		{"unclosed body", "class A {\n int x;\n", 3, 1, "'}'"},
		{"garbage at top level", "int x;", 1, 1, "class, interface or enum declaration"},
		{"missing semicolon", "class A { int x }", 1, 17, "'(', '=' or ';'"},
		{"bad member", "class A { 42; }", 1, 11, "member declaration"},
		{"unbalanced method body", "class A { void f() { ( } }", 1, 24, "')'"},
		{"record", "record P(int x) {}", 1, 1, "class, interface or enum declaration"},
		{"nested record", "class A { record P(int x) {} }", 1, 11, "class, interface or enum declaration"},
		{"annotation type", "@interface A {}", 1, 1, "class, interface or enum declaration"},
		{"enum junk", "enum E { A B }", 1, 12, "',', ';' or '}'"},
		{"unclosed generic", "class A { List<String x; }", 1, 23, "'>'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompilationUnit(strings.NewReader(tt.src)).Finish()
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("error = %v, want *SyntaxError", err)
			}
			if synErr.Pos.Line != tt.line || synErr.Pos.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d (%v)", synErr.Pos.Line, synErr.Pos.Column, tt.line, tt.column, synErr)
			}
			if synErr.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", synErr.Expected, tt.expected)
			}
		})
	}
}

func TestParseLexErrorPropagates(t *testing.T) {
	_, err := ParseCompilationUnit(strings.NewReader("class A { String s = \"x; }")).Finish()
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error = %v, want *LexError", err)
	}
}

func TestBuildFromTokens(t *testing.T) {
	src := []byte("/** doc */ class A { void f(); }")
	node, err := Build(Tokenize(src, WithComments()))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if node.FirstChildOfKind(KindClassDecl) == nil {
		t.Error("missing class declaration")
	}
}

func TestParseEmptyUnit(t *testing.T) {
	node := parse(t, "// nothing here\n")
	if len(node.Children) != 0 {
		t.Errorf("children = %d, want 0", len(node.Children))
	}
}

func TestCommentsCollected(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("/** A */ class A {} // end"), WithComments())
	if _, err := p.Finish(); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Comments()); got != 2 {
		t.Errorf("comments = %d, want 2", got)
	}
}
