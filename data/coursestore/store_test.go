package coursestore

import (
	"context"
	"testing"
)

func TestCapabilityGatesWrites(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	course := Course{ID: 5, Shortname: "math301", Options: map[string]string{}}

	if err := store.Persist(ctx, ReadCapability(), &course); err != ErrNotPermitted {
		t.Errorf("persist with a read capability should be refused, got %v", err)
	}
	if err := store.RecomputeWeeksEndDate(ctx, ReadCapability(), 5); err != ErrNotPermitted {
		t.Errorf("recompute with a read capability should be refused, got %v", err)
	}
}

func TestCapabilityTokensAreDistinct(t *testing.T) {
	a := ManageCapability()
	b := ManageCapability()
	if a.Token() == b.Token() {
		t.Error("every minted capability should carry its own token")
	}
	if !a.CanManage() || ReadCapability().CanManage() {
		t.Error("manage rights should only come from ManageCapability")
	}
}

func TestOptionBool(t *testing.T) {
	course := Course{Options: map[string]string{
		"automaticenddate": "1",
		"hiddensections":   "0",
		"legacyflag":       "true",
	}}
	if !course.OptionBool("automaticenddate") {
		t.Error("\"1\" should read as true")
	}
	if !course.OptionBool("legacyflag") {
		t.Error("\"true\" should read as true")
	}
	if course.OptionBool("hiddensections") {
		t.Error("\"0\" should read as false")
	}
	if course.OptionBool("missing") {
		t.Error("a missing option should read as false")
	}
}

func TestOptionInt(t *testing.T) {
	course := Course{Options: map[string]string{
		"numsections": "12",
		"garbage":     "abc",
		"negative":    "-3",
	}}
	if got := course.optionInt("numsections", 4); got != 12 {
		t.Errorf("expected 12 got %d", got)
	}
	if got := course.optionInt("missing", 4); got != 4 {
		t.Errorf("missing option should fall back, got %d", got)
	}
	if got := course.optionInt("garbage", 4); got != 4 {
		t.Errorf("unparsable option should fall back, got %d", got)
	}
	if got := course.optionInt("negative", 4); got != 4 {
		t.Errorf("non positive option should fall back, got %d", got)
	}
}
