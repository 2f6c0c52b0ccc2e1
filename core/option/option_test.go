package option_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/mdown/core/option"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestOptionMaybe(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var y1, y2, y3 interface{}
	x := option.Something("quote")
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	y1, _ = x.Match(option.Maybe{
		option.None: "empty",
		option.Some: x.Unwrap(),
	})
	//
	x = option.Nothing()
	y2, _ = x.Match(option.Maybe{
		option.None: "No Value",
		option.Some: stringify,
	})
	//
	x = option.Something("quote")
	y3, _ = x.Match(option.Maybe{
		option.None:  "No Value",
		option.Some:  nonsense,
		option.Error: stringify,
	})
	//
	t.Logf("y1 = %v, y2 = %s, y3 = %v", y1, y2, y3)
	if y1.(string) != "quote" {
		t.Errorf("expected Something(quote) to match to quote, is %v", y1)
	}
	if y2.(string) != "No Value" {
		t.Errorf("expected Nothing to match to No Value, is %v", y2)
	}
	if y3 != "Value = quote" {
		t.Errorf("expected Something(quote) to match to Value = quote, is %v", y3)
	}
}

func TestOptionOf(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var y1 interface{}
	x := option.SomeBool(true)
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	y1, _ = x.Match(option.Of{
		option.None: 7,
		true:        99,
		option.Some: 1,
	})
	//
	t.Logf("y1 = %d", y1)
	if y1.(int) != 99 {
		t.Errorf("expected SomeBool(true) to match to 99, is %d", y1)
	}
}

func TestOptionRef(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var y1 interface{}
	x := option.Something("hey")
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	y1, _ = x.Match(option.Of{
		option.None: 0,
		"hey":       99,
		option.Some: 1,
	})
	//
	t.Logf("y1 = %d", y1)
	if y1.(int) != 99 {
		t.Errorf("expected Something(hey) to match to 99, is %d", y1)
	}
}

func TestOptionFail(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	x := option.SomeBool(false)
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	_, err := x.Match(option.Of{
		option.None:  7,
		false:        option.Fail(errors.New("Fail")),
		option.Some:  x.Unwrap(),
		option.Error: option.Fail(errors.New("Caught Fail")),
	})
	//
	t.Logf("err = %v", err)
	if err == nil {
		t.Errorf("expected SomeBool(false) to match to an error, hasn't")
	}
	if err.Error() != "Caught Fail" {
		t.Errorf("expected SomeBool(false) error to be caught, isn't")
	}
}

func TestOptionWrap(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	x := option.Something("ref")
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	s, err := x.Match(option.Of{
		option.None: "None",
		option.Some: option.WrapResult(stringify(x.Unwrap())),
	})
	//
	t.Logf("s = %+v, err = %v", s, err)
	if err != nil {
		t.Errorf("expected Something(ref) to match without error, hasn't")
	}
	if s == nil {
		t.Errorf("expected Something(ref) to match to non-nil result, didn't")
	}
	if str, ok := s.(string); ok {
		if str != "Value = ref" {
			t.Errorf("expected Something(ref) to match to 'Value = ref', didn't")
		}
	} else {
		t.Errorf("expected Something(ref) to match to string, didn't")
	}
}

func TestOptionWrapError(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	x := option.Something("ref")
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	s, err := x.Match(option.Of{
		option.None:  "None",
		option.Some:  option.WrapResult(nonsense(x.Unwrap())),
		option.Error: "ERROR",
	})
	//
	t.Logf("s = %+v, err = %v", s, err)
	if err != nil {
		t.Errorf("expected error from matching Something(ref) to be caught, isn't")
	}
	if s == nil {
		t.Errorf("expected Something(ref) to match to a non-nil result, didn't")
	}
	if str, ok := s.(string); ok {
		if str != "ERROR" {
			t.Errorf("expected Something(ref) to match to string ERROR, didn't")
		}
	} else {
		t.Errorf("expected Something(ref) to match to string, didn't")
	}
}

// ---------------------------------------------------------------------------

func nonsense(x interface{}) (interface{}, error) {
	return nil, errors.New("ERROR")
}

func stringify(x interface{}) (interface{}, error) {
	return fmt.Sprintf("Value = %v", x), nil
}
