package offer

import "testing"

func TestNew(t *testing.T) {
	o := New(199.99, "United", "2026-11-17T08:30:00", "2026-11-17T11:05:00")

	if o.Price() != 199.99 {
		t.Errorf("expected price 199.99, got %v", o.Price())
	}
	if o.Airline() != "United" {
		t.Errorf("expected airline United, got %q", o.Airline())
	}
	if o.DepartureTime() != "2026-11-17T08:30:00" {
		t.Errorf("unexpected departure time %q", o.DepartureTime())
	}
	if o.ArrivalTime() != "2026-11-17T11:05:00" {
		t.Errorf("unexpected arrival time %q", o.ArrivalTime())
	}
}

func TestNew_Defaults(t *testing.T) {
	o := New(-5, "  ", "", "")

	if o.Price() != 0 {
		t.Errorf("negative price must clamp to 0, got %v", o.Price())
	}
	if o.Airline() != UnknownAirline {
		t.Errorf("blank airline must default to %q, got %q", UnknownAirline, o.Airline())
	}
	if o.DepartureTime() != UnknownTime {
		t.Errorf("expected empty departure time, got %q", o.DepartureTime())
	}
}
