package diag

import "testing"

func TestLocateContext(t *testing.T) {
	src := "sensors:\n  - id: temp\n    lambda: return x * 2.0;\n  - id: rssi\n"

	line, col, ok := LocateContext(src, "lambda: return x * 2.0;")
	if !ok || line != 3 || col != 5 {
		t.Fatalf("exact locate got=(%d,%d,%v)", line, col, ok)
	}

	if _, _, ok := LocateContext(src, ""); ok {
		t.Fatalf("empty context should fail")
	}
	if _, _, ok := LocateContext(src, "  \n\n"); ok {
		t.Fatalf("blank context should fail")
	}
	if _, _, ok := LocateContext(src, "does not exist"); ok {
		t.Fatalf("missing context should fail")
	}
	if _, _, ok := LocateContext(src, "id:"); ok {
		t.Fatalf("ambiguous context should fail")
	}
}

func TestLocateContextMultiLineSnippet(t *testing.T) {
	src := "lambda: |-\n  if (x > 10) {\n    return 10;\n  }\n  return x;\n"

	line, _, ok := LocateContext(src, "if (x > 10) {\n  return 10;\n}\nreturn x;")
	if !ok || line != 2 {
		t.Fatalf("multi-line locate got=(%d,%v)", line, ok)
	}
}

func TestLocateContextMidLine(t *testing.T) {
	src := "a\nfilters: [multiply: 0.1]\nb\n"
	line, col, ok := LocateContext(src, "multiply: 0.1")
	if !ok || line != 2 || col != 11 {
		t.Fatalf("mid-line locate got=(%d,%d,%v)", line, col, ok)
	}
}
