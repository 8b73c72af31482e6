package codegen

import (
	"fmt"
	"strings"
	"time"

	"fwgen/internal/config"
	"fwgen/internal/cpp"
)

var floatParam = []cpp.Parameter{{Type: "float", Name: "x"}}

func (cg *CodeGen) generateSensor(s *config.Sensor) {
	id := cpp.SanitizeIdentifier(s.ID)
	cg.emitGlobal("Sensor %s;", id)

	cg.emitSetup("  %s.set_name(%q);", id, s.ID)
	cg.emitSetup("  %s.set_update_interval(%d);", id, cg.intervalMillis(s))

	switch s.Platform {
	case "adc":
		cg.emitSetup("  %s.set_pin(%d);", id, *s.Pin)
		reader := cg.lambdas.Process(&cpp.LambdaExpression{
			Parts:      []string{"return analogRead(pin) / 4095.0f;"},
			Params:     []cpp.Parameter{{Type: "int", Name: "pin"}},
			ReturnType: cpp.Raw("float"),
		})
		cg.emitSetup("  %s.set_reader(%s);", id, reader)
	case "pulse_counter":
		cg.emitSetup("  %s.set_pin(%d);", id, *s.Pin)
		reader := cg.lambdas.Process(&cpp.LambdaExpression{
			Parts:      []string{"return (float) pulse_count(pin);"},
			Params:     []cpp.Parameter{{Type: "int", Name: "pin"}},
			ReturnType: cpp.Raw("float"),
		})
		cg.emitSetup("  %s.set_reader(%s);", id, reader)
	case "template":
		// User code may reference any firmware state, so it captures the
		// enclosing scope and always stays inline.
		cg.emitSetup("  %s.set_template(%s);", id, cg.userLambda(s.Lambda, nil, cpp.Raw("float")))
	default:
		cg.addContextError(fmt.Sprintf("unsupported sensor platform %q", s.Platform), s.ID)
		return
	}

	for i := range s.Filters {
		expr, ok := cg.filterLambda(s, &s.Filters[i])
		if !ok {
			continue
		}
		cg.emitSetup("  %s.add_filter(%s);", id, expr)
	}

	cg.emitLoop("  %s.update(millis());", id)
}

// filterLambda turns one filter step into a lambda value. Arithmetic
// filters are generated stateless lambdas, which is where deduplication
// pays off: the same multiply or clamp step repeated across sensors folds
// into a single shared function.
func (cg *CodeGen) filterLambda(s *config.Sensor, f *config.Filter) (cpp.Expression, bool) {
	switch {
	case f.Multiply != nil:
		return cg.statelessFilter(fmt.Sprintf("return x * %s;", cpp.FormatFloat(*f.Multiply))), true
	case f.Offset != nil:
		return cg.statelessFilter(fmt.Sprintf("return x + (%s);", cpp.FormatFloat(*f.Offset))), true
	case f.Clamp != nil:
		body := fmt.Sprintf("if (x < %s) return %s;\nif (x > %s) return %s;\nreturn x;",
			cpp.FormatFloat(f.Clamp.Min), cpp.FormatFloat(f.Clamp.Min),
			cpp.FormatFloat(f.Clamp.Max), cpp.FormatFloat(f.Clamp.Max))
		return cg.statelessFilter(body), true
	case f.Lambda != "":
		return cg.userLambda(f.Lambda, floatParam, cpp.Raw("float")), true
	default:
		cg.addContextError("filter has no action", s.ID)
		return nil, false
	}
}

func (cg *CodeGen) statelessFilter(body string) cpp.Expression {
	return cg.lambdas.Process(&cpp.LambdaExpression{
		Parts:      []string{body},
		Params:     floatParam,
		ReturnType: cpp.Raw("float"),
	})
}

// userLambda wraps a config-supplied C++ body. The capture is "=" because
// user code may close over enclosing state; such lambdas never reach the
// registry. When the snippet can be located in the config file, the
// rendered lambda carries a provenance comment.
func (cg *CodeGen) userLambda(body string, params []cpp.Parameter, ret cpp.Expression) cpp.Expression {
	l := &cpp.LambdaExpression{
		Parts:      []string{body},
		Params:     params,
		Capture:    "=",
		ReturnType: ret,
	}
	if line, ok := cg.cfg.Locate(body); ok {
		l.Source = &cpp.SourceLocation{File: cg.cfg.Path(), Line: line}
	}
	return cg.lambdas.Process(l)
}

func (cg *CodeGen) generateBinarySensor(bs *config.BinarySensor) {
	id := cpp.SanitizeIdentifier(bs.ID)
	cg.emitGlobal("BinarySensor %s;", id)

	cg.emitSetup("  pinMode(%d, INPUT);", *bs.Pin)
	cg.emitSetup("  %s.set_name(%q);", id, bs.ID)

	// One shared decoder for all inverted inputs and one for all plain
	// inputs, however many binary sensors the device carries.
	body := "return state != 0;"
	if bs.Inverted {
		body = "return state == 0;"
	}
	decoder := cg.lambdas.Process(&cpp.LambdaExpression{
		Parts:      []string{body},
		Params:     []cpp.Parameter{{Type: "int", Name: "state"}},
		ReturnType: cpp.Raw("bool"),
	})
	cg.emitSetup("  %s.set_decoder(%s);", id, decoder)

	cg.emitLoop("  %s.poll(digitalRead(%d));", id, *bs.Pin)
}

func (cg *CodeGen) generateSwitch(sw *config.Switch) {
	id := cpp.SanitizeIdentifier(sw.ID)
	cg.emitGlobal("Switch %s;", id)

	cg.emitSetup("  pinMode(%d, OUTPUT);", *sw.Pin)
	cg.emitSetup("  %s.set_name(%q);", id, sw.ID)
	cg.emitSetup("  %s.set_pin(%d);", id, *sw.Pin)

	// The writer takes the pin as a parameter, so every switch shares one
	// function. No explicit return type: the registry keys it under the
	// inferred sentinel.
	writer := cg.lambdas.Process(&cpp.LambdaExpression{
		Parts:  []string{"digitalWrite(pin, state ? HIGH : LOW);"},
		Params: []cpp.Parameter{{Type: "int", Name: "pin"}, {Type: "bool", Name: "state"}},
	})
	cg.emitSetup("  %s.set_writer(%s);", id, writer)

	if sw.RestoreMode != "" {
		cg.emitSetup("  %s.set_restore_mode(RESTORE_MODE_%s);", id, strings.ToUpper(sw.RestoreMode))
	}
	for _, other := range sw.InterlockWith {
		cg.emitSetup("  %s.add_interlock(&%s);", id, cpp.SanitizeIdentifier(other))
	}
}

func (cg *CodeGen) intervalMillis(s *config.Sensor) int64 {
	if s.UpdateInterval == "" {
		return (60 * time.Second).Milliseconds()
	}
	d, err := config.ParseInterval(s.UpdateInterval)
	if err != nil {
		cg.addContextError(err.Error(), s.ID)
		return (60 * time.Second).Milliseconds()
	}
	return d.Milliseconds()
}
