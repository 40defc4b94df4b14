package models

import "testing"

func TestTagCountHelpers(t *testing.T) {
	tc := make(TagCount)
	if tc.Has("sad") || tc.Count("sad") != 0 {
		t.Error("absent tag should count as zero")
	}
	tc.Add("sad", "anxious")
	tc.Add("sad")
	if tc.Count("sad") != 2 || tc.Count("anxious") != 1 {
		t.Errorf("unexpected counts %v", tc)
	}
	if !tc.HasAny("nope", "anxious") {
		t.Error("HasAny should find anxious")
	}
	if tc.HasAny("nope", "never") {
		t.Error("HasAny should miss absent tags")
	}
}

func TestConversationContextLifecycle(t *testing.T) {
	c := NewConversationContext("waiting")
	if c.Current != "waiting" || c.Previous != "waiting" {
		t.Errorf("fresh context should rest in the default state, got %+v", c)
	}
	if c.FinishPending || c.Greeted || c.ConfusedRetries != 0 {
		t.Errorf("fresh context should carry zero flags, got %+v", c)
	}

	if _, ok := c.Slot("professor"); ok {
		t.Error("fresh context should have no slots")
	}
	c.SetSlot("professor", "kathryn")
	if v, ok := c.Slot("professor"); !ok || v != "kathryn" {
		t.Errorf("slot round trip failed, got %q/%v", v, ok)
	}
	c.ClearSlots()
	if _, ok := c.Slot("professor"); ok {
		t.Error("ClearSlots should drop all slots")
	}
}

func TestSetSlotOnNilMap(t *testing.T) {
	c := &ConversationContext{Current: "waiting"}
	c.SetSlot("professor", "jeff")
	if v, _ := c.Slot("professor"); v != "jeff" {
		t.Errorf("SetSlot should initialize the map, got %q", v)
	}
}
