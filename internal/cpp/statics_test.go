package cpp

import "testing"

func TestHasStaticLocalsDetection(t *testing.T) {
	positives := []string{
		"static int counter = 0;",
		"static bool flag = false; return flag;",
		"  static  float  value  =  1.0;  ",
		"// comment\nstatic int x = 0;\nreturn x;",
		"static int\nfoo = 0;",
		"static\nint\nbar = 0;",
		"static  int  \n  foo  =  0;",
	}
	for _, body := range positives {
		if !HasStaticLocals(body) {
			t.Fatalf("expected static local detected in %q", body)
		}
	}

	negatives := []string{
		"return static_cast<int>(value);",
		"static_assert(sizeof(int) == 4);",
		"auto ptr = static_pointer_cast<Foo>(bar);",
		"static cast obj;",
		"static assert value;",
		"static pointer_cast ptr;",
		"// static int x = 0;\nreturn 42;",
		"/* static int y = 0; */ return 42;",
		"int counter = 0; return counter++;",
		"return 42;",
		"",
	}
	for _, body := range negatives {
		if HasStaticLocals(body) {
			t.Fatalf("false positive for %q", body)
		}
	}
}

func TestHasStaticLocalsMultipleOccurrences(t *testing.T) {
	// A lookalike earlier in the body must not mask a real declaration.
	body := "auto v = static_cast<int>(x);\nstatic int hits = 0;\nreturn hits++;"
	if !HasStaticLocals(body) {
		t.Fatalf("expected detection after a cast lookalike")
	}
}

// FuzzHasStaticLocals ensures the classifier never panics and is stable
// under trailing whitespace, which cannot introduce a declaration.
func FuzzHasStaticLocals(f *testing.F) {
	seeds := []string{
		"",
		"return 42;",
		"static int counter = 0; return counter++;",
		"return static_cast<int>(value);",
		"// static int x = 0;\nreturn 42;",
		"/* unterminated comment static int z = 0;",
		"static\nint\nbar = 0;",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, body string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("HasStaticLocals panicked for %q: %v", body, r)
			}
		}()

		got := HasStaticLocals(body)
		if HasStaticLocals(body+"  ") != got {
			t.Fatalf("trailing whitespace changed classification of %q", body)
		}
	})
}
