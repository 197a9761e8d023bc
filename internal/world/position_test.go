package world

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"n", North, false},
		{"SOUTH", South, false},
		{" e ", East, false},
		{"left", West, false},
		{"up", North, false},
		{"nw", Stay, true},
		{"", Stay, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPositionStepAndDistance(t *testing.T) {
	p := Position{Row: 4, Col: 3}
	if got := p.Step(North); got != (Position{Row: 3, Col: 3}) {
		t.Errorf("Step(North) = %v", got)
	}
	if got := p.Step(West); got != (Position{Row: 4, Col: 2}) {
		t.Errorf("Step(West) = %v", got)
	}
	if got := p.Step(Stay); got != p {
		t.Errorf("Step(Stay) = %v", got)
	}
	if got := p.Distance(Position{Row: 1, Col: 5}); got != 5 {
		t.Errorf("Distance = %d, want 5", got)
	}
	if got := p.String(); got != "(4,3)" {
		t.Errorf("String() = %q", got)
	}
	if got := Direction(42).String(); got != "unknown" {
		t.Errorf("Direction(42).String() = %q", got)
	}
}
