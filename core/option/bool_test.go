package option_test

import (
	"testing"

	"github.com/npillmayer/mdown/core/option"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestOptionBoolMaybe(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	x := option.SomeBool(true)
	t.Logf("x = %v, x.T = %T, x.unwrap = %v", x, x, x.Unwrap())
	y1, _ := x.Match(option.Maybe{
		option.None: "unset",
		option.Some: "set",
	})
	//
	x = option.Bool()
	y2, _ := x.Match(option.Maybe{
		option.None: "unset",
		option.Some: "set",
	})
	//
	t.Logf("y1 = %s, y2 = %s", y1, y2)
	if y1.(string) != "set" {
		t.Errorf("expected SomeBool(true) to match to set, is %v", y1)
	}
	if y2.(string) != "unset" {
		t.Errorf("expected null-bool to match to unset, is %v", y2)
	}
}

func TestOptionBoolTriState(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	if !option.Bool().IsNone() {
		t.Errorf("expected Bool() to be None, isn't")
	}
	if option.SomeBool(false).IsNone() {
		t.Errorf("expected SomeBool(false) to be distinguishable from None, isn't")
	}
	if option.SomeBool(false).Unwrap() {
		t.Errorf("expected SomeBool(false) to unwrap to false, hasn't")
	}
	if !option.SomeBool(true).Equals(true) {
		t.Errorf("expected SomeBool(true) to equal true, doesn't")
	}
	if option.Bool().Equals(false) {
		t.Errorf("expected unset bool not to equal false, does")
	}
}
