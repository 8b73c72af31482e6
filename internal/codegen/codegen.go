package codegen

import (
	"fmt"
	"strings"

	"fwgen/internal/board"
	"fwgen/internal/config"
	"fwgen/internal/cpp"
)

// CodeGen holds the state for one firmware generation run: per-section
// output buffers, the lambda registry, the deferred job queue and the
// collected errors. A CodeGen is single-use; create a fresh one per run so
// no shared-lambda names or pending declarations leak between runs.
type CodeGen struct {
	cfg     *config.Config
	profile *board.Profile

	includes     []string
	seenIncludes map[string]bool
	globals      strings.Builder
	setup        strings.Builder
	loop         strings.Builder

	lambdas *cpp.LambdaRegistry
	jobs    jobQueue
	errors  []CodegenError
}

type CodegenError struct {
	Message string
	Context string
}

// New creates a code generator for one validated device description. The
// declaration flush is queued as a final-priority job up front, so it runs
// once, after every component job has had its chance to register lambdas.
func New(cfg *config.Config, profile *board.Profile) *CodeGen {
	cg := &CodeGen{
		cfg:          cfg,
		profile:      profile,
		seenIncludes: make(map[string]bool),
		lambdas:      cpp.NewLambdaRegistry(),
	}
	cg.jobs.add(priorityFinal, cg.flushSharedLambdas)
	return cg
}

// Generate produces the complete main.cpp for the device description.
func (cg *CodeGen) Generate() string {
	for _, inc := range cg.profile.Includes {
		cg.addInclude(inc)
	}

	for i := range cg.cfg.Sensors {
		s := &cg.cfg.Sensors[i]
		cg.jobs.add(priorityDefault, func() { cg.generateSensor(s) })
	}
	for i := range cg.cfg.BinarySensors {
		bs := &cg.cfg.BinarySensors[i]
		cg.jobs.add(priorityDefault, func() { cg.generateBinarySensor(bs) })
	}
	for i := range cg.cfg.Switches {
		sw := &cg.cfg.Switches[i]
		cg.jobs.add(priorityDefault, func() { cg.generateSwitch(sw) })
	}

	cg.jobs.runAll()
	return cg.assemble()
}

// SharedLambdaCount reports how many shared functions this run allocated.
func (cg *CodeGen) SharedLambdaCount() int { return cg.lambdas.Count() }

// flushSharedLambdas drains the pending shared-function definitions into
// the global section, in allocation order. Runs exactly once per run as
// the final-priority job.
func (cg *CodeGen) flushSharedLambdas() {
	for _, decl := range cg.lambdas.PendingDeclarations() {
		cg.globals.WriteString(decl)
		cg.globals.WriteString("\n\n")
	}
}

func (cg *CodeGen) assemble() string {
	var out strings.Builder
	fmt.Fprintf(&out, "// Generated firmware for device %q (board %s, platform %s).\n",
		cg.cfg.Device.Name, cg.profile.Name, cg.cfg.Device.Platform)
	out.WriteString("// Do not edit; regenerating overwrites this file.\n\n")

	for _, inc := range cg.includes {
		fmt.Fprintf(&out, "#include <%s>\n", inc)
	}
	out.WriteString("\n")

	out.WriteString(cg.globals.String())

	out.WriteString("void setup() {\n")
	out.WriteString(cg.setup.String())
	out.WriteString("}\n\n")

	out.WriteString("void loop() {\n")
	out.WriteString(cg.loop.String())
	out.WriteString("}\n")
	return out.String()
}

func (cg *CodeGen) addInclude(header string) {
	if cg.seenIncludes[header] {
		return
	}
	cg.seenIncludes[header] = true
	cg.includes = append(cg.includes, header)
}

func (cg *CodeGen) emitGlobal(format string, args ...interface{}) {
	fmt.Fprintf(&cg.globals, format, args...)
	cg.globals.WriteString("\n")
}

func (cg *CodeGen) emitSetup(format string, args ...interface{}) {
	fmt.Fprintf(&cg.setup, format, args...)
	cg.setup.WriteString("\n")
}

func (cg *CodeGen) emitLoop(format string, args ...interface{}) {
	fmt.Fprintf(&cg.loop, format, args...)
	cg.loop.WriteString("\n")
}

func (cg *CodeGen) addError(msg string) {
	cg.errors = append(cg.errors, CodegenError{Message: msg})
}

func (cg *CodeGen) addContextError(msg string, context string) {
	cg.errors = append(cg.errors, CodegenError{Message: msg, Context: context})
}

func (cg *CodeGen) Errors() []string {
	formatted := make([]string, 0, len(cg.errors))
	for _, err := range cg.errors {
		if err.Context == "" {
			formatted = append(formatted, err.Message)
			continue
		}
		formatted = append(formatted, fmt.Sprintf("%s (at `%s`)", err.Message, err.Context))
	}
	return formatted
}

func (cg *CodeGen) DetailedErrors() []CodegenError {
	out := make([]CodegenError, len(cg.errors))
	copy(out, cg.errors)
	return out
}
